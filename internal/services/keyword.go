package services

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"ats-engine/internal/models"
)

type KeywordMatcherService interface {
	Score(resumeText, jdText string) models.KeywordResult
}

type keywordMatcherService struct{}

func NewKeywordMatcherService() KeywordMatcherService {
	return &keywordMatcherService{}
}

// Heuristic proper-noun/technology detector: capitalized tokens, allowing
// the usual suffix characters (C++, C#, Node.js).
var techPattern = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9+#.]*\b`)

// tokenPattern mirrors the vectorizer default: word tokens of length >= 2.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

var commonSkills = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go",
	"php", "swift", "kotlin", "r", "scala", "rust", "react", "angular", "vue",
	"django", "flask", "fastapi", "node", "express", "sql", "mysql", "postgresql",
	"mongodb", "redis", "elasticsearch", "aws", "azure", "gcp", "docker", "kubernetes",
	"machine learning", "deep learning", "nlp", "tensorflow", "pytorch",
	"pandas", "numpy", "scikit-learn", "communication", "leadership", "agile",
}

var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again", "against",
		"all", "almost", "alone", "along", "already", "also", "although", "always",
		"am", "among", "amongst", "an", "and", "another", "any", "anyhow", "anyone",
		"anything", "anyway", "anywhere", "are", "around", "as", "at", "back", "be",
		"became", "because", "become", "becomes", "becoming", "been", "before",
		"beforehand", "behind", "being", "below", "beside", "besides", "between",
		"beyond", "both", "bottom", "but", "by", "call", "can", "cannot", "could",
		"did", "do", "does", "doing", "done", "down", "during", "each", "either",
		"else", "elsewhere", "empty", "enough", "even", "ever", "every", "everyone",
		"everything", "everywhere", "except", "few", "first", "for", "former",
		"formerly", "from", "front", "full", "further", "had", "has", "have", "he",
		"hence", "her", "here", "hereafter", "hereby", "herein", "hereupon", "hers",
		"herself", "him", "himself", "his", "how", "however", "i", "if", "in",
		"indeed", "into", "is", "it", "its", "itself", "last", "latter", "latterly",
		"least", "less", "many", "may", "me", "meanwhile", "might", "mine", "more",
		"moreover", "most", "mostly", "much", "must", "my", "myself", "namely",
		"neither", "never", "nevertheless", "next", "no", "nobody", "none", "noone",
		"nor", "not", "nothing", "now", "nowhere", "of", "off", "often", "on",
		"once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
		"ours", "ourselves", "out", "over", "own", "per", "perhaps", "please",
		"rather", "same", "see", "seem", "seemed", "seeming", "seems", "several",
		"she", "should", "since", "so", "some", "somehow", "someone", "something",
		"sometime", "sometimes", "somewhere", "still", "such", "than", "that",
		"the", "their", "theirs", "them", "themselves", "then", "thence", "there",
		"thereafter", "thereby", "therefore", "therein", "thereupon", "these",
		"they", "this", "those", "though", "through", "throughout", "thru", "thus",
		"to", "together", "too", "top", "toward", "towards", "under", "until",
		"up", "upon", "us", "very", "via", "was", "we", "well", "were", "what",
		"whatever", "when", "whence", "whenever", "where", "whereafter", "whereas",
		"whereby", "wherein", "whereupon", "wherever", "whether", "which", "while",
		"whither", "who", "whoever", "whole", "whom", "whose", "why", "will",
		"with", "within", "without", "would", "yet", "you", "your", "yours",
		"yourself", "yourselves",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// Score computes the deterministic keyword/TF-IDF similarity between a resume
// and a job description. Pure function: identical inputs always yield
// identical output.
func (k *keywordMatcherService) Score(resumeText, jdText string) models.KeywordResult {
	jdKeywords := extractKeywords(jdText)
	resumeKeywords := extractKeywords(resumeText)

	var matched, missing []string
	for kw := range jdKeywords {
		if _, ok := resumeKeywords[kw]; ok {
			matched = append(matched, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	if len(missing) > 10 {
		missing = missing[:10]
	}

	matchRatio := 0.0
	if len(jdKeywords) > 0 {
		matchRatio = float64(len(matched)) / float64(len(jdKeywords))
	}

	similarity := tfidfSimilarity(resumeText, jdText)

	combined := matchRatio*0.6 + similarity*0.4
	return models.KeywordResult{
		Score:   round1(combined * 100),
		Matched: matched,
		Missing: missing,
	}
}

func extractKeywords(text string) map[string]struct{} {
	found := make(map[string]struct{})
	lower := strings.ToLower(text)
	for _, skill := range commonSkills {
		if strings.Contains(lower, skill) {
			found[skill] = struct{}{}
		}
	}
	for _, match := range techPattern.FindAllString(text, -1) {
		if len(match) > 2 {
			found[strings.ToLower(match)] = struct{}{}
		}
	}
	return found
}

// tfidfSimilarity computes the cosine similarity of the two texts over a
// shared unigram+bigram vocabulary with English stop words removed. Smoothed
// idf and l2 normalization keep the value in [0,1]. A degenerate vocabulary
// (everything filtered out) yields 0.
func tfidfSimilarity(resumeText, jdText string) float64 {
	docs := [][]string{ngrams(resumeText), ngrams(jdText)}

	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
		}
	}
	if len(vocab) == 0 {
		return 0
	}

	// Document frequencies across the two documents.
	df := make([]int, len(vocab))
	vectors := make([][]float64, len(docs))
	for i, doc := range docs {
		vec := make([]float64, len(vocab))
		for _, term := range doc {
			vec[vocab[term]]++
		}
		for j, tf := range vec {
			if tf > 0 {
				df[j]++
			}
		}
		vectors[i] = vec
	}

	n := float64(len(docs))
	for _, vec := range vectors {
		for j := range vec {
			if vec[j] == 0 {
				continue
			}
			idf := math.Log((1+n)/(1+float64(df[j]))) + 1
			vec[j] *= idf
		}
		normalize(vec)
	}

	return cosine(vectors[0], vectors[1])
}

// ngrams tokenizes, lowercases, drops stop words, and emits unigrams plus
// bigrams over the surviving tokens.
func ngrams(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := raw[:0]
	for _, t := range raw {
		if _, stop := englishStopWords[t]; !stop {
			tokens = append(tokens, t)
		}
	}

	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

func cosine(a, b []float64) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
