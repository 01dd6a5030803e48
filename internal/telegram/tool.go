package telegram

import "strings"

// markdownEscaper 转义 Markdown(legacy) 模式下的特殊字符
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown 用于转义插入消息中的用户输入
func EscapeMarkdown(input string) string {
	return markdownEscaper.Replace(input)
}
