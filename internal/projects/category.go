package projects

import (
	"slices"
	"strings"

	"github.com/kevinmichaelchen/showcase/internal/models"
)

// DefaultCategory is assigned when no rule matches.
const DefaultCategory = "Web Development"

// Signals are the lower-cased repository attributes the category rules inspect.
type Signals struct {
	Name        string
	Description string
	Language    string
	Topics      []string
}

func signalsOf(repo models.Repo) Signals {
	topics := make([]string, len(repo.Topics))
	for i, t := range repo.Topics {
		topics[i] = strings.ToLower(t)
	}
	return Signals{
		Name:        strings.ToLower(repo.Name),
		Description: strings.ToLower(repo.DescriptionText()),
		Language:    strings.ToLower(repo.LanguageText()),
		Topics:      topics,
	}
}

func (s Signals) hasTopic(names ...string) bool {
	for _, t := range s.Topics {
		if slices.Contains(names, t) {
			return true
		}
	}
	return false
}

func (s Signals) describes(words ...string) bool {
	for _, w := range words {
		if strings.Contains(s.Description, w) {
			return true
		}
	}
	return false
}

// CategoryRule matches when any topic is in Topics, the description contains
// any of Description, or Extra reports true.
type CategoryRule struct {
	Category    string
	Gradient    string
	Topics      []string
	Description []string
	Extra       func(Signals) bool
}

func (r CategoryRule) Matches(s Signals) bool {
	if s.hasTopic(r.Topics...) || s.describes(r.Description...) {
		return true
	}
	return r.Extra != nil && r.Extra(s)
}

// CategoryRules are evaluated in order; the first match wins.
var CategoryRules = []CategoryRule{
	{
		Category:    "AI/ML",
		Gradient:    "from-purple-500-to-pink-500",
		Topics:      []string{"ai", "ml", "machine-learning", "artificial-intelligence", "deep-learning", "neural-network", "tensorflow", "pytorch"},
		Description: []string{"ai", "machine learning", "neural"},
		Extra: func(s Signals) bool {
			return s.Language == "python" && s.describes("model", "data")
		},
	},
	{
		Category:    "Mobile",
		Gradient:    "from-blue-500-to-cyan-500",
		Topics:      []string{"mobile", "react-native", "flutter", "ios", "android", "expo", "swift", "kotlin", "dart"},
		Description: []string{"mobile", "app"},
		Extra: func(s Signals) bool {
			return s.Language == "swift" || s.Language == "kotlin" || s.Language == "dart"
		},
	},
	{
		Category:    "Blockchain",
		Gradient:    "from-yellow-500-to-orange-500",
		Topics:      []string{"blockchain", "web3", "cryptocurrency", "ethereum", "bitcoin", "solidity", "smart-contract", "defi", "nft"},
		Description: []string{"blockchain", "crypto", "web3"},
		Extra: func(s Signals) bool {
			return s.Language == "solidity"
		},
	},
	{
		Category:    "Real-time",
		Gradient:    "from-green-500-to-teal-500",
		Topics:      []string{"realtime", "websocket", "socket.io", "chat", "messaging", "live"},
		Description: []string{"real-time", "websocket", "chat", "live"},
	},
	{
		Category:    "Data Science",
		Gradient:    "from-indigo-500-to-purple-500",
		Topics:      []string{"data", "analytics", "visualization", "dashboard", "statistics", "analysis", "jupyter", "pandas", "numpy"},
		Description: []string{"data", "analytics", "visualization"},
		Extra: func(s Signals) bool {
			return s.Language == "python" && s.describes("analysis", "dashboard")
		},
	},
	{
		Category:    "Game Development",
		Gradient:    "from-red-500-to-pink-500",
		Topics:      []string{"game", "unity", "unreal", "gamedev", "gaming", "engine"},
		Description: []string{"game", "unity", "gaming"},
	},
	{
		Category:    "DevOps",
		Gradient:    "from-gray-500-to-gray-700",
		Topics:      []string{"devops", "docker", "kubernetes", "ci-cd", "deployment", "infrastructure", "terraform", "ansible"},
		Description: []string{"devops", "deployment", "infrastructure"},
	},
	{
		Category:    "Full Stack",
		Gradient:    "from-blue-600-to-purple-600",
		Topics:      []string{"fullstack", "full-stack"},
		Description: []string{"full-stack", "fullstack"},
		Extra: func(s Signals) bool {
			return s.hasTopic("frontend") && s.hasTopic("backend")
		},
	},
	{
		Category:    "Frontend",
		Gradient:    "from-cyan-200-to-blue-500",
		Topics:      []string{"frontend", "react", "vue", "angular", "svelte", "nextjs", "nuxt", "website", "ui", "ux"},
		Description: []string{"frontend", "website", "ui"},
		Extra: func(s Signals) bool {
			return (s.Language == "javascript" || s.Language == "typescript") && s.describes("react", "vue")
		},
	},
	{
		Category:    "Backend",
		Gradient:    "from-green-600-to-blue-600",
		Topics:      []string{"backend", "api", "server", "microservice", "rest", "graphql", "database"},
		Description: []string{"backend", "api", "server"},
		Extra: func(s Signals) bool {
			return slices.Contains([]string{"java", "python", "go", "rust", "c#", "php", "ruby"}, s.Language)
		},
	},
	{
		Category:    "Desktop",
		Gradient:    "from-gray-600-to-gray-800",
		Topics:      []string{"desktop", "electron", "tauri", "gui", "application"},
		Description: []string{"desktop", "application"},
		Extra: func(s Signals) bool {
			return s.Language == "electron"
		},
	},
}

const (
	defaultGradient  = "from-blue-500-to-purple-500"
	fallbackGradient = "from-purple-500-to-blue-500"
)

// Categorize returns the override for the repository name when one exists,
// otherwise the first matching rule's category, otherwise DefaultCategory.
func Categorize(repo models.Repo, overrides map[string]string) string {
	if c, ok := overrides[repo.Name]; ok && c != "" {
		return c
	}
	s := signalsOf(repo)
	for _, rule := range CategoryRules {
		if rule.Matches(s) {
			return rule.Category
		}
	}
	return DefaultCategory
}

// Gradient returns the placeholder gradient for a category. Categories
// without one (custom overrides) get a fallback.
func Gradient(category string) string {
	if category == DefaultCategory {
		return defaultGradient
	}
	for _, rule := range CategoryRules {
		if rule.Category == category {
			return rule.Gradient
		}
	}
	return fallbackGradient
}

// Categories lists every category label in rule order, default last.
func Categories() []string {
	out := make([]string, 0, len(CategoryRules)+1)
	for _, rule := range CategoryRules {
		out = append(out, rule.Category)
	}
	return append(out, DefaultCategory)
}
