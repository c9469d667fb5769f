package tui

import "unicode/utf8"

// maxUsernameLen bounds the search input. GitHub logins are at most 39 characters.
const maxUsernameLen = 39

// maxFilterLen bounds the repository filter input.
const maxFilterLen = 100

// editRune processes a keystroke for inline text editing.
// Handles backspace (rune-aware) and single printable characters.
// Returns the text unchanged for non-printable keys (enter, esc, etc.).
// Input is clamped to limit runes.
func editRune(text string, key string, limit int) string {
	switch key {
	case "backspace":
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	default:
		if utf8.RuneCountInString(key) == 1 {
			if utf8.RuneCountInString(text) >= limit {
				return text
			}
			return text + key
		}
		return text
	}
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}

// renderInput renders a single-line text field with a prompt, a blinking
// cursor when focused, and a placeholder when empty.
func renderInput(prompt, text, placeholder string, focused bool, frame int) string {
	p := inputPromptStyle.Render(prompt)
	if !focused {
		if text == "" {
			return p + inputPlaceholderStyle.Render(placeholder)
		}
		return p + dimStyle.Render(text)
	}
	cursor := " "
	if (frame/4)%2 == 0 {
		cursor = accentStyle.Render("█")
	}
	if text == "" {
		return p + cursor + inputPlaceholderStyle.Render(placeholder)
	}
	return p + selectedStyle.Render(text) + cursor
}
