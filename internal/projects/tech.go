package projects

import (
	"slices"
	"strings"

	"github.com/kevinmichaelchen/showcase/internal/models"
)

// MaxTechnologies caps the tags shown on a card.
const MaxTechnologies = 5

// Tech is a technology name from the known vocabulary.
type Tech string

const (
	React       Tech = "React"
	NextJS      Tech = "Next.js"
	NodeJS      Tech = "Node.js"
	TypeScript  Tech = "TypeScript"
	JavaScript  Tech = "JavaScript"
	Python      Tech = "Python"
	Java        Tech = "Java"
	CPP         Tech = "C++"
	CSharp      Tech = "C#"
	PHP         Tech = "PHP"
	Ruby        Tech = "Ruby"
	Go          Tech = "Go"
	Rust        Tech = "Rust"
	Swift       Tech = "Swift"
	Kotlin      Tech = "Kotlin"
	Dart        Tech = "Dart"
	HTML        Tech = "HTML"
	CSS         Tech = "CSS"
	Vue         Tech = "Vue"
	Angular     Tech = "Angular"
	Svelte      Tech = "Svelte"
	MongoDB     Tech = "MongoDB"
	PostgreSQL  Tech = "PostgreSQL"
	MySQL       Tech = "MySQL"
	Redis       Tech = "Redis"
	Docker      Tech = "Docker"
	Kubernetes  Tech = "Kubernetes"
	AWS         Tech = "AWS"
	Firebase    Tech = "Firebase"
	Tailwind    Tech = "Tailwind"
	Bootstrap   Tech = "Bootstrap"
	Express     Tech = "Express"
	Django      Tech = "Django"
	Flask       Tech = "Flask"
	Laravel     Tech = "Laravel"
	SpringBoot  Tech = "Spring Boot"
	GraphQL     Tech = "GraphQL"
	REST        Tech = "REST"
	SocketIO    Tech = "Socket.io"
	WebRTC      Tech = "WebRTC"
	Flutter     Tech = "Flutter"
	ReactNative Tech = "React Native"
	Expo        Tech = "Expo"
	Electron    Tech = "Electron"
	Solidity    Tech = "Solidity"
	Web3JS      Tech = "Web3.js"
	Ethereum    Tech = "Ethereum"
	Bitcoin     Tech = "Bitcoin"
	TensorFlow  Tech = "TensorFlow"
	PyTorch     Tech = "PyTorch"
	Pandas      Tech = "Pandas"
	NumPy       Tech = "NumPy"
	Jupyter     Tech = "Jupyter"
)

// TechInfo is the display metadata of a technology badge.
type TechInfo struct {
	Name  Tech   `json:"name"`
	Color string `json:"color"`
}

// DefaultColor is used for names outside the vocabulary.
const DefaultColor = "bg-gray-500 hover:bg-gray-600"

// Vocabulary is the known technology list. Topic matching walks it in this order.
var Vocabulary = []TechInfo{
	{React, "bg-blue-500 hover:bg-blue-600"},
	{NextJS, "bg-black hover:bg-gray-800"},
	{NodeJS, "bg-green-500 hover:bg-green-600"},
	{TypeScript, "bg-blue-600 hover:bg-blue-700"},
	{JavaScript, "bg-yellow-500 hover:bg-yellow-600"},
	{Python, "bg-blue-400 hover:bg-blue-500"},
	{Java, "bg-orange-600 hover:bg-orange-700"},
	{CPP, "bg-blue-700 hover:bg-blue-800"},
	{CSharp, "bg-purple-700 hover:bg-purple-800"},
	{PHP, "bg-indigo-600 hover:bg-indigo-700"},
	{Ruby, "bg-red-600 hover:bg-red-700"},
	{Go, "bg-cyan-600 hover:bg-cyan-700"},
	{Rust, "bg-orange-700 hover:bg-orange-800"},
	{Swift, "bg-orange-500 hover:bg-orange-600"},
	{Kotlin, "bg-purple-500 hover:bg-purple-600"},
	{Dart, "bg-blue-500 hover:bg-blue-600"},
	{HTML, "bg-orange-500 hover:bg-orange-600"},
	{CSS, "bg-blue-500 hover:bg-blue-600"},
	{Vue, "bg-green-500 hover:bg-green-600"},
	{Angular, "bg-red-600 hover:bg-red-700"},
	{Svelte, "bg-orange-600 hover:bg-orange-700"},
	{MongoDB, "bg-green-600 hover:bg-green-700"},
	{PostgreSQL, "bg-blue-700 hover:bg-blue-800"},
	{MySQL, "bg-blue-600 hover:bg-blue-700"},
	{Redis, "bg-red-500 hover:bg-red-600"},
	{Docker, "bg-blue-500 hover:bg-blue-600"},
	{Kubernetes, "bg-blue-600 hover:bg-blue-700"},
	{AWS, "bg-orange-500 hover:bg-orange-600"},
	{Firebase, "bg-orange-500 hover:bg-orange-600"},
	{Tailwind, "bg-cyan-500 hover:bg-cyan-600"},
	{Bootstrap, "bg-purple-600 hover:bg-purple-700"},
	{Express, "bg-gray-600 hover:bg-gray-700"},
	{Django, "bg-green-700 hover:bg-green-800"},
	{Flask, "bg-gray-800 hover:bg-gray-900"},
	{Laravel, "bg-red-500 hover:bg-red-600"},
	{SpringBoot, "bg-green-600 hover:bg-green-700"},
	{GraphQL, "bg-pink-500 hover:bg-pink-600"},
	{REST, "bg-blue-500 hover:bg-blue-600"},
	{SocketIO, "bg-purple-500 hover:bg-purple-600"},
	{WebRTC, "bg-red-600 hover:bg-red-700"},
	{Flutter, "bg-blue-400 hover:bg-blue-500"},
	{ReactNative, "bg-cyan-600 hover:bg-cyan-700"},
	{Expo, "bg-gray-800 hover:bg-gray-900"},
	{Electron, "bg-gray-700 hover:bg-gray-800"},
	{Solidity, "bg-gray-500 hover:bg-gray-600"},
	{Web3JS, "bg-orange-500 hover:bg-orange-600"},
	{Ethereum, "bg-blue-800 hover:bg-blue-900"},
	{Bitcoin, "bg-orange-600 hover:bg-orange-700"},
	{TensorFlow, "bg-orange-500 hover:bg-orange-600"},
	{PyTorch, "bg-red-600 hover:bg-red-700"},
	{Pandas, "bg-blue-600 hover:bg-blue-700"},
	{NumPy, "bg-blue-500 hover:bg-blue-600"},
	{Jupyter, "bg-orange-400 hover:bg-orange-500"},
}

var techAliases = map[Tech]string{
	NextJS:      "nextjs",
	NodeJS:      "nodejs",
	ReactNative: "react-native",
	SocketIO:    "socketio",
}

var colorByName = func() map[Tech]string {
	m := make(map[Tech]string, len(Vocabulary))
	for _, info := range Vocabulary {
		m[info.Name] = info.Color
	}
	return m
}()

// Known reports whether name is exactly a vocabulary entry.
func Known(name string) bool {
	_, ok := colorByName[Tech(name)]
	return ok
}

// Color returns the badge color for a technology, or DefaultColor.
func Color(name string) string {
	if c, ok := colorByName[Tech(name)]; ok {
		return c
	}
	return DefaultColor
}

func normalizeTech(t Tech) string {
	return strings.Map(func(r rune) rune {
		if r == '.' || r == ' ' || r == '\t' || r == '\n' {
			return -1
		}
		return r
	}, strings.ToLower(string(t)))
}

func topicMatches(topic string, t Tech) bool {
	norm := normalizeTech(t)
	return topic == norm || strings.Contains(topic, norm) || techAliases[t] == topic
}

// Technologies derives up to MaxTechnologies badge names: the primary
// language when known, then vocabulary entries matched by topics, then the
// React→TypeScript and Node.js→Express inferences. No name repeats.
func Technologies(repo models.Repo) []string {
	var out []string
	add := func(name string) {
		if !slices.Contains(out, name) {
			out = append(out, name)
		}
	}

	if lang := repo.LanguageText(); Known(lang) {
		add(lang)
	}

	for _, topic := range repo.Topics {
		topic = strings.ToLower(topic)
		for _, info := range Vocabulary {
			if topicMatches(topic, info.Name) {
				add(string(info.Name))
			}
		}
	}

	if slices.Contains(out, string(React)) && slices.Contains(repo.Topics, "typescript") {
		add(string(TypeScript))
	}
	if slices.Contains(out, string(NodeJS)) && slices.Contains(repo.Topics, "express") {
		add(string(Express))
	}

	if len(out) > MaxTechnologies {
		out = out[:MaxTechnologies]
	}
	if out == nil {
		out = []string{}
	}
	return out
}
