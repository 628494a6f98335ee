package cli

import "strings"

// emojiShortcodes is the emoji picker set, typed as :name:.
var emojiShortcodes = strings.NewReplacer(
	":heart:", "❤️",
	":smile:", "😄",
	":joy:", "😂",
	":wink:", "😉",
	":cool:", "😎",
	":sad:", "😢",
	":thumbsup:", "👍",
	":clap:", "👏",
	":fire:", "🔥",
	":party:", "🎉",
	":star:", "⭐",
	":rocket:", "🚀",
)

// expandEmoji replaces known shortcodes in s. Unknown ones are left alone.
func expandEmoji(s string) string {
	return emojiShortcodes.Replace(s)
}
