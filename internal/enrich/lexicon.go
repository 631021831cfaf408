// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import "strings"

// valences maps sentiment-bearing words to a polarity in [-1,1]. The list
// leans toward vocabulary common in news copy.
var valences = map[string]float64{
	// positive
	"good": 0.7, "great": 0.8, "excellent": 1.0, "outstanding": 0.9,
	"positive": 0.5, "success": 0.7, "successful": 0.7, "win": 0.6,
	"wins": 0.6, "won": 0.6, "gain": 0.4, "gains": 0.4, "growth": 0.4,
	"improve": 0.5, "improved": 0.5, "improvement": 0.5, "strong": 0.4,
	"boost": 0.5, "boosts": 0.5, "record": 0.3, "surge": 0.4,
	"breakthrough": 0.8, "progress": 0.5, "recovery": 0.5, "hope": 0.5,
	"hopeful": 0.6, "optimistic": 0.7, "promising": 0.6, "benefit": 0.5,
	"benefits": 0.5, "better": 0.5, "best": 0.9, "happy": 0.8,
	"celebrate": 0.7, "celebrated": 0.7, "praise": 0.6, "praised": 0.6,
	"agreement": 0.3, "peace": 0.6, "safe": 0.4, "thriving": 0.8,
	"remarkable": 0.7, "wonderful": 1.0, "love": 0.8, "welcome": 0.5,
	"welcomed": 0.5, "relief": 0.4, "stable": 0.3, "support": 0.3,

	// negative
	"bad": -0.7, "terrible": -1.0, "awful": -1.0, "horrible": -1.0,
	"negative": -0.5, "failure": -0.7, "fail": -0.6, "fails": -0.6,
	"failed": -0.6, "loss": -0.5, "losses": -0.5, "lose": -0.5,
	"lost": -0.5, "decline": -0.4, "declines": -0.4, "drop": -0.4,
	"drops": -0.4, "crash": -0.8, "crisis": -0.7, "disaster": -0.9,
	"catastrophe": -1.0, "death": -0.8, "deaths": -0.8, "dead": -0.8,
	"killed": -0.9, "attack": -0.7, "attacks": -0.7, "war": -0.7,
	"conflict": -0.5, "threat": -0.6, "threats": -0.6, "fear": -0.6,
	"fears": -0.6, "worried": -0.5, "worry": -0.5, "concern": -0.3,
	"concerns": -0.3, "weak": -0.4, "worse": -0.6, "worst": -0.9,
	"fraud": -0.8, "scandal": -0.7, "corruption": -0.8, "collapse": -0.8,
	"damage": -0.5, "danger": -0.6, "dangerous": -0.6, "violence": -0.8,
	"violent": -0.8, "injured": -0.6, "injury": -0.5, "struggle": -0.4,
	"struggling": -0.4, "recession": -0.6, "layoffs": -0.6, "shortage": -0.4,
}

// negators invert the valence of the word that follows them.
var negators = map[string]bool{
	"not": true, "no": true, "never": true, "without": true,
	"hardly": true, "barely": true,
}

// Polarity scores text in [-1,1] by averaging the valence of recognized
// words. A negator directly before a recognized word flips its sign.
// Text with no recognized words scores 0.
func Polarity(text string) float64 {
	var sum float64
	var matched int
	negated := false

	for _, tok := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(tok, `.,;:!?'"()[]{}`)
		if v, ok := valences[word]; ok {
			if negated {
				v = -v
			}
			sum += v
			matched++
		}
		negated = negators[word]
	}

	if matched == 0 {
		return 0
	}
	return sum / float64(matched)
}
