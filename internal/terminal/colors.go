package terminal

// Terminal color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Prompt returns a prompt string, colored when color is set
func Prompt(text string, color bool) string {
	if !color {
		return text + " > "
	}
	return Yellow + text + " > " + Reset
}
