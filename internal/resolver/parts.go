package resolver

// commonParts maps frequent part names to colloquial and misspelled
// variants. The canonical names and variants join the fuzzy pool so
// synonyms resolve under the same thresholds as catalog names.
var commonParts = map[string][]string{
	"brake pad":      {"brake pads", "break pad", "break pads"},
	"oil filter":     {"oil filt", "oill filter"},
	"air filter":     {"air filtr", "cabin filter"},
	"alternator":     {"alternatr", "alternator generator"},
	"timing belt":    {"timeing belt", "cam belt"},
	"spark plug":     {"spark plugs"},
	"shock absorber": {"shocks", "damper"},
	"windshield":     {"front glass", "wind screen"},
}
