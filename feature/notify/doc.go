// Package notify posts reservation event messages to a WeChat Work group
// webhook.
//
// Messages use the markdown_v2 format: a title depending on the action
// (create, edit, delete), a table summarizing the reservation, and the
// creation timestamp in local time. User-supplied text is escaped with
// EscapeMarkdownV2 before embedding.
//
// Delivery is strictly best effort. The webhook URL and a debug flag are
// read from the settings store on every call (with a config fallback for
// the URL); the POST uses a 10 second timeout, an explicit UTF-8 content
// type, and no outbound proxy. Every failure class (unconfigured URL,
// timeout, connection failure, non-200 status, WeChat error code, or a
// malformed response body) is mapped to a distinct (false, reason)
// result and logged. Send never returns an error to its caller.
package notify
