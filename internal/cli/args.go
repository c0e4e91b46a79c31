package cli

// legacyFlags maps the two-letter single-dash spellings gl has always
// accepted to their long forms, which cobra would otherwise read as a
// group of short flags.
var legacyFlags = map[string]string{
	"-mo": "--move-over",
	"-mi": "--move-ignored",
	"-dp": "--divergent-point",
	"-sh": "--set-head",
	"-cp": "--commit-point",
}

// NormalizeArgs rewrites legacy flag spellings. Everything after "--" is
// left alone.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if long, ok := legacyFlags[arg]; ok {
			arg = long
		}
		out = append(out, arg)
	}
	return out
}
