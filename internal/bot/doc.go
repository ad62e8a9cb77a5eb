// Package bot is the conversation layer between Telegram and the
// scraping client.
//
// It presents a reply-keyboard menu, turns free text into catalog
// searches, caches each result set under a numeric key surfaced through
// inline buttons, and answers a button press by downloading, tagging,
// and sending the picked track as an audio attachment.
//
// Failure policy: whatever goes wrong inside a handler, the user sees
// one short generic line; the cause is logged with context for
// operators. The bot serves private chats only.
package bot
