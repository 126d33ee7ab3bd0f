// Package format turns raw item values into display markup for a ValueFormat
// tag. Every function returns safe HTML: text is escaped, rich text is
// sanitized and links only accept http(s), tel and mailto targets.
//
// Empty values render as Sentinel for every format except text and html,
// which render nothing. Values that cannot be parsed for their format are
// shown verbatim so bad data stays visible.
package format
