// Package scraper fetches recent posts for an Instagram account through the
// Scrape.do proxy.
//
// The primary path requests the profile-info JSON endpoint and walks the
// timeline media edges for caption text and post shortcodes. When the proxy
// hands back the profile HTML page instead (login walls, soft blocks), a
// degraded goquery pass recovers caption text from image alt attributes.
// Transient proxy errors are retried with bounded exponential backoff.
package scraper
