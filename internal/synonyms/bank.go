// Package synonyms holds the two static, read-only lookup tables the
// relevance engine consults when expanding a query token or phrase into its
// surface-form variants: a per-token synonym bank and a per-phrase synonym
// bank. Both are frozen at package init and never mutated afterward.
package synonyms

// TokenSynonyms maps a normalized single word to the set of words treated as
// equivalent to it for scoring purposes.
var TokenSynonyms = map[string]map[string]struct{}{
	"dog": set("dog", "dogs", "canine", "canines", "chien", "chiens", "k9", "k-9", "working dog"),
	"canine": set("canine", "canines", "chien", "chiens", "k9", "dog", "dogs"),
	"mine": set(
		"mine", "mines", "landmine", "landmines", "land mine", "land mines",
		"uxo", "ordnance", "explosive", "explosives", "ied", "ieds",
		"munition", "munitions",
	),
	"detection": set(
		"detection", "detect", "detects", "detecting", "detected", "detector",
		"detectors", "repérage", "détection", "détecteur", "détecteurs",
		"identification",
	),
	"explosive": set(
		"explosive", "explosives", "explosif", "explosifs", "bomb", "bombs",
		"bomblet", "mine", "ordnance", "ied", "ieds", "uxo",
	),
	"odor": set(
		"odor", "odors", "odour", "odours", "scent", "scents", "olfaction",
		"olfactory", "olfactif", "odorant", "odorants", "smell", "smells",
		"sniff", "sniffing",
	),
	"dog-handler": set("handler", "guide", "team", "binôme"),
	"robot":       set("robot", "robotics", "robotique", "autonomous", "autonome"),
	"review":      set("review", "survey", "overview", "state of the art", "revue"),
}

// PhraseSynonyms maps a normalized 2- or 3-word phrase to the set of phrases
// treated as equivalent to it.
var PhraseSynonyms = map[string]map[string]struct{}{
	"mine detection": set(
		"mine detection", "landmine detection", "explosive detection",
		"explosives detection", "bomb detection", "detection de mine",
		"détection de mines", "détection des mines",
	),
	"explosive detection": set(
		"explosive detection", "explosives detection", "explosive sniffing",
		"explosive sensing", "explosive trace detection",
		"détection d'explosifs",
	),
	"detection dog": set(
		"detection dog", "detection dogs", "explosive detection dog",
		"sniffer dog", "chien détecteur", "chien de détection",
		"chien démineur",
	),
	"search dog": set(
		"search dog", "search dogs", "working dog", "chien de recherche",
		"chien pisteur",
	),
}

func set(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
