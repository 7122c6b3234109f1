package notify

import "strings"

// markdownV2Replacer escapes the characters the WeChat Work markdown_v2
// format reserves: _ * [ ] ( ) ~ ` > # + - = | { } . !
var markdownV2Replacer = strings.NewReplacer(
	"_", `\_`,
	"*", `\*`,
	"[", `\[`,
	"]", `\]`,
	"(", `\(`,
	")", `\)`,
	"~", `\~`,
	"`", "\\`",
	">", `\>`,
	"#", `\#`,
	"+", `\+`,
	"-", `\-`,
	"=", `\=`,
	"|", `\|`,
	"{", `\{`,
	"}", `\}`,
	".", `\.`,
	"!", `\!`,
)

// EscapeMarkdownV2 escapes user-supplied text for embedding in a
// markdown_v2 message body.
func EscapeMarkdownV2(text string) string {
	if text == "" {
		return text
	}
	return markdownV2Replacer.Replace(text)
}
