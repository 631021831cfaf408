// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// CategoryFeeds maps a news category to the feed URLs serving it.
type CategoryFeeds map[string][]string

// Matrix is the static locale matrix: country code → language code →
// category → feed URLs. The zero category key "general" must exist for
// every (country, language) pair present in the matrix.
type Matrix map[string]map[string]CategoryFeeds

// builtinMatrix lists curated feeds that publish in the given language for
// the given country. Kept small on purpose; deployments extend it with a
// YAML overlay file.
var builtinMatrix = Matrix{
	"in": {
		"hi": {
			"general": {
				"https://feeds.feedburner.com/ndtvnews-hindi",
				"https://www.bhaskar.com/rss-feed/1061/",
				"https://www.aajtak.in/rss.xml",
			},
			"business": {
				"https://navbharattimes.indiatimes.com/rssfeedsdefault.cms",
			},
		},
		"en": {
			"general": {
				"https://timesofindia.indiatimes.com/rssfeedstopstories.cms",
				"https://www.hindustantimes.com/feeds/rss/india-news/index.xml",
				"https://feeds.feedburner.com/ndtvnews-india-news",
			},
			"business": {
				"https://economictimes.indiatimes.com/rssfeedsdefault.cms",
				"https://www.business-standard.com/rss/home_page_top_stories.rss",
			},
			"technology": {
				"https://economictimes.indiatimes.com/tech/rssfeeds/13357270.cms",
			},
		},
	},
	"us": {
		"en": {
			"general": {
				"https://rss.cnn.com/rss/edition.rss",
				"https://feeds.nbcnews.com/nbcnews/public/news",
				"https://feeds.washingtonpost.com/rss/world",
			},
			"business": {
				"https://feeds.reuters.com/reuters/businessNews",
				"https://rss.cnn.com/rss/money_latest.rss",
			},
			"technology": {
				"https://feeds.reuters.com/reuters/technologyNews",
				"https://rss.cnn.com/rss/cnn_tech.rss",
			},
		},
		"es": {
			"general": {
				"https://cnnespanol.cnn.com/feed/",
				"https://www.univision.com/feeds/rss/noticias",
			},
		},
	},
	"gb": {
		"en": {
			"general": {
				"http://feeds.bbci.co.uk/news/rss.xml",
				"https://www.theguardian.com/uk/rss",
				"https://feeds.skynews.com/feeds/rss/home.xml",
			},
			"business": {
				"http://feeds.bbci.co.uk/news/business/rss.xml",
				"https://www.theguardian.com/uk/business/rss",
			},
			"technology": {
				"http://feeds.bbci.co.uk/news/technology/rss.xml",
				"https://www.theguardian.com/uk/technology/rss",
			},
		},
	},
	"de": {
		"de": {
			"general": {
				"https://www.spiegel.de/schlagzeilen/tops/index.rss",
				"https://rss.dw.com/rdf/rss-de-all",
				"https://www.tagesschau.de/xml/rss2",
			},
			"business": {
				"https://www.handelsblatt.com/contentexport/feed/schlagzeilen/",
			},
		},
		"en": {
			"general": {
				"https://rss.dw.com/rdf/rss-en-all",
			},
		},
	},
	"fr": {
		"fr": {
			"general": {
				"https://www.lemonde.fr/rss/une.xml",
				"https://www.france24.com/fr/rss",
				"https://www.lefigaro.fr/rss/figaro_actualites.xml",
			},
			"business": {
				"https://www.lemonde.fr/economie/rss_full.xml",
			},
		},
		"en": {
			"general": {
				"https://www.france24.com/en/rss",
			},
		},
	},
	"es": {
		"es": {
			"general": {
				"https://feeds.elpais.com/mrss-s/pages/ep/site/elpais.com/portada",
				"https://e00-elmundo.uecdn.es/elmundo/rss/portada.xml",
				"https://www.abc.es/rss/feeds/abc_EspanaEspana.xml",
			},
			"business": {
				"https://feeds.elpais.com/mrss-s/pages/ep/site/elpais.com/section/economia/portada",
			},
		},
	},
	"jp": {
		"ja": {
			"general": {
				"https://www3.nhk.or.jp/rss/news/cat0.xml",
				"https://www.asahi.com/rss/asahi/newsheadlines.rdf",
			},
		},
		"en": {
			"general": {
				"https://www3.nhk.or.jp/nhkworld/en/news/rss.xml",
			},
		},
	},
	"br": {
		"pt": {
			"general": {
				"https://g1.globo.com/rss/g1/",
				"https://folha.uol.com.br/rss/emcimadahora.xml",
				"https://feeds.estadao.com.br/estadao/ultimas",
			},
		},
	},
	"ca": {
		"en": {
			"general": {
				"https://rss.cbc.ca/lineup/topstories.xml",
				"https://globalnews.ca/feed/",
			},
		},
		"fr": {
			"general": {
				"https://ici.radio-canada.ca/rss/9711",
			},
		},
	},
	"au": {
		"en": {
			"general": {
				"https://www.abc.net.au/news/feed/51120/rss.xml",
				"https://feeds.nine.com.au/rss/news",
			},
		},
	},
	"it": {
		"it": {
			"general": {
				"https://www.ansa.it/sito/notizie/cronaca/cronaca_rss.xml",
				"https://www.corriere.it/rss/homepage.xml",
			},
		},
	},
	"ru": {
		"ru": {
			"general": {
				"https://lenta.ru/rss",
				"https://ria.ru/export/rss2/archive/index.xml",
			},
		},
	},
	"cn": {
		"zh": {
			"general": {
				"http://feeds.feedburner.com/people_world",
				"http://rss.xinhuanet.com/rss/world.xml",
			},
		},
	},
	"kr": {
		"ko": {
			"general": {
				"https://www.yonhapnews.co.kr/RSS/news.xml",
			},
		},
	},
}

// worldwideFeeds is the last-resort feed group, keyed by category. It backs
// every (country, language) pair the matrix does not know.
var worldwideFeeds = CategoryFeeds{
	"general": {
		"https://feeds.reuters.com/reuters/topNews",
		"http://feeds.bbci.co.uk/news/rss.xml",
	},
	"business": {
		"https://feeds.reuters.com/reuters/businessNews",
	},
	"technology": {
		"https://feeds.reuters.com/reuters/technologyNews",
	},
	"sports": {
		"https://feeds.reuters.com/reuters/sportsNews",
	},
	"health": {
		"https://feeds.reuters.com/reuters/healthNews",
	},
	"science": {
		"http://feeds.bbci.co.uk/news/science_and_environment/rss.xml",
	},
	"entertainment": {
		"http://feeds.bbci.co.uk/news/entertainment_and_arts/rss.xml",
	},
}

// LoadMatrixOverlay reads a YAML matrix file and merges it over base.
// Overlay entries replace the base entry for the same (country, language)
// pair wholesale; there is no per-category blending across files.
func LoadMatrixOverlay(path string, base Matrix) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading matrix file %s: %w", path, err)
	}

	var overlay Matrix
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing matrix file %s: %w", path, err)
	}

	merged := make(Matrix, len(base)+len(overlay))
	for country, langs := range base {
		merged[country] = langs
	}
	for country, langs := range overlay {
		if existing, ok := merged[country]; ok {
			combined := make(map[string]CategoryFeeds, len(existing)+len(langs))
			for lang, feeds := range existing {
				combined[lang] = feeds
			}
			for lang, feeds := range langs {
				combined[lang] = feeds
			}
			merged[country] = combined
			continue
		}
		merged[country] = langs
	}
	return merged, nil
}

// Countries returns the selectable countries (display name → code).
// "worldwide" is a pseudo-country that skips locale matching entirely.
func Countries() map[string]string {
	return map[string]string{
		"Worldwide":      "worldwide",
		"United States":  "us",
		"United Kingdom": "gb",
		"India":          "in",
		"Canada":         "ca",
		"Australia":      "au",
		"Germany":        "de",
		"France":         "fr",
		"Spain":          "es",
		"Japan":          "jp",
		"Brazil":         "br",
		"Italy":          "it",
		"Netherlands":    "nl",
		"South Korea":    "kr",
		"Mexico":         "mx",
		"Russia":         "ru",
		"China":          "cn",
	}
}

// Languages returns the selectable languages (display name → code).
func Languages() map[string]string {
	return map[string]string{
		"English":    "en",
		"Spanish":    "es",
		"French":     "fr",
		"German":     "de",
		"Italian":    "it",
		"Portuguese": "pt",
		"Japanese":   "ja",
		"Chinese":    "zh",
		"Korean":     "ko",
		"Russian":    "ru",
		"Dutch":      "nl",
		"Hindi":      "hi",
	}
}

// Categories returns the selectable news categories (display name → code).
func Categories() map[string]string {
	return map[string]string{
		"General":       "general",
		"Business":      "business",
		"Technology":    "technology",
		"Sports":        "sports",
		"Health":        "health",
		"Science":       "science",
		"Entertainment": "entertainment",
	}
}
