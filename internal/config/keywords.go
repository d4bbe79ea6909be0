package config

// Taxonomy is one fixed keyword list used for scoring page text.
// Entries are matched case-insensitively as substrings, so a list may
// contain multi-word phrases.
//
// Design decision: Taxonomies are immutable configuration data injected
// into the scorer and link discoverer at construction rather than
// process-wide mutable state. Alternate taxonomies stay testable in
// isolation, and accessors below return copies so callers cannot mutate
// the canonical lists.
type Taxonomy struct {
	// Name identifies the taxonomy in logs and results.
	Name string

	// Keywords are the phrases to count. Both accented and unaccented
	// French variants are listed explicitly; matching never folds
	// diacritics.
	Keywords []string
}

// ExplicitCarbonPhrase is the literal phrase whose presence on any page
// flags an explicit carbon accounting report, as opposed to a mere
// mention of emissions.
const ExplicitCarbonPhrase = "bilan carbone"

// LinkStemWeight is the relevance weight added per stem matched in a
// candidate link's URL or anchor text.
const LinkStemWeight = 5

// rseKeywords covers sustainability and CSR vocabulary in French and English.
var rseKeywords = []string{
	"rse", "responsabilité sociétale", "responsabilité sociale",
	"responsabilite sociétale", "responsabilite sociale",
	"développement durable", "developpement durable", "durable",
	"environnement", "environnemental", "impact environnemental",
	"transition écologique", "transition ecologique", "transition énergétique",
	"transition energetique",
	"esg", "csr", "sustainability", "sustainable", "sustainable development",
}

// carbonKeywords covers carbon accounting and emissions vocabulary.
var carbonKeywords = []string{
	"bilan carbone", "empreinte carbone", "émissions de co2",
	"emissions de co2", "émissions carbone", "emissions carbone",
	"gaz à effet de serre", "gaz a effet de serre",
	"co2", "réduction des émissions", "reduction des emissions",
	"neutralité carbone", "neutralite carbone",
	"décarbonation", "decarbonation",
	"scope 1", "scope 2", "scope 3",
}

// greenITKeywords covers responsible digital / green IT vocabulary.
var greenITKeywords = []string{
	"numérique responsable", "numerique responsable",
	"éco-conception", "eco-conception", "eco conception",
	"site éco-conçu", "site eco-concu",
	"green it",
	"hébergement vert", "hebergement vert",
	"hébergement écologique", "hebergement ecologique",
	"data center vert",
	"sobriété numérique", "sobriete numerique",
}

// linkStems is the short-stem vocabulary used to rank candidate links.
// Stems are shorter than the taxonomy phrases so they match inside URL
// slugs (e.g. "/notre-demarche-durable") as well as anchor text.
var linkStems = []string{
	"rse", "responsabilite", "responsabilité",
	"developpement-durable", "developpement durable",
	"durable", "environnement", "carbone", "co2",
	"csr", "sustainab",
}

// RSETaxonomy returns the sustainability/CSR taxonomy.
func RSETaxonomy() Taxonomy {
	return Taxonomy{Name: "rse", Keywords: copyStrings(rseKeywords)}
}

// CarbonTaxonomy returns the carbon accounting taxonomy.
func CarbonTaxonomy() Taxonomy {
	return Taxonomy{Name: "carbon", Keywords: copyStrings(carbonKeywords)}
}

// GreenITTaxonomy returns the green IT taxonomy.
func GreenITTaxonomy() Taxonomy {
	return Taxonomy{Name: "green_it", Keywords: copyStrings(greenITKeywords)}
}

// LinkStems returns the stem vocabulary for candidate link ranking.
func LinkStems() []string {
	return copyStrings(linkStems)
}

// copyStrings returns a fresh copy of a string slice.
func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
