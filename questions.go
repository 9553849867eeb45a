package main

import (
	"math/rand"
	"strings"
)

// Answer is one ranked entry on a question's board. Points are awarded to
// every player and team whose submission matches the text once the host
// reveals it.
type Answer struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
	Rank   int    `json:"rank"`
}

type Question struct {
	ID       int      `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"question"`
	Answers  []Answer `json:"answers"`
}

// Catalog is the static, read-only question store. Rooms draw from it at
// the start of every round.
type Catalog struct {
	questions []Question
}

func newCatalog() *Catalog {
	return &Catalog{questions: questionTable}
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

func (c *Catalog) Questions() []Question {
	return c.questions
}

// Random picks a question uniformly.
func (c *Catalog) Random() Question {
	return c.questions[rand.Intn(len(c.questions))]
}

func (c *Catalog) ByID(id int) (Question, bool) {
	for _, q := range c.questions {
		if q.ID == id {
			return q, true
		}
	}

	return Question{}, false
}

func (c *Catalog) ByCategory(category string) []Question {
	matched := []Question{}
	for _, q := range c.questions {
		if strings.EqualFold(q.Category, category) {
			matched = append(matched, q)
		}
	}

	return matched
}

var questionTable = []Question{
	{
		ID:       1,
		Category: "Gaming Culture",
		Prompt:   "What's the most annoying thing someone can do in a Discord voice chat?",
		Answers: []Answer{
			{Text: "Breathing loudly", Points: 40, Rank: 1},
			{Text: "Echo/feedback", Points: 30, Rank: 2},
			{Text: "Music playing", Points: 25, Rank: 3},
			{Text: "Eating sounds", Points: 20, Rank: 4},
			{Text: "Background noise", Points: 15, Rank: 5},
			{Text: "Not muting", Points: 10, Rank: 6},
			{Text: "Keyboard clicking", Points: 5, Rank: 7},
			{Text: "Bad microphone", Points: 3, Rank: 8},
		},
	},
	{
		ID:       2,
		Category: "Friend Dynamics",
		Prompt:   "What's something friends always argue about when choosing a game to play?",
		Answers: []Answer{
			{Text: "Genre preference", Points: 40, Rank: 1},
			{Text: "Difficulty level", Points: 30, Rank: 2},
			{Text: "Game length", Points: 25, Rank: 3},
			{Text: "Cost/price", Points: 20, Rank: 4},
			{Text: "Platform compatibility", Points: 15, Rank: 5},
			{Text: "Skill level differences", Points: 10, Rank: 6},
			{Text: "Time availability", Points: 5, Rank: 7},
			{Text: "Personal preferences", Points: 3, Rank: 8},
		},
	},
	{
		ID:       3,
		Category: "Trending Now",
		Prompt:   "If you had to explain the '100 men vs 1 gorilla' meme to your parents, what would you say?",
		Answers: []Answer{
			{Text: "It's just internet humor", Points: 40, Rank: 1},
			{Text: "Don't ask, it's weird", Points: 30, Rank: 2},
			{Text: "People debate random things", Points: 25, Rank: 3},
			{Text: "Gen Z finds it funny", Points: 20, Rank: 4},
			{Text: "It's a hypothetical fight", Points: 15, Rank: 5},
			{Text: "Makes no sense", Points: 10, Rank: 6},
			{Text: "Viral TikTok thing", Points: 5, Rank: 7},
			{Text: "Internet being internet", Points: 3, Rank: 8},
		},
	},
	{
		ID:       4,
		Category: "Pop Culture",
		Prompt:   "Name something people pretend to understand about cryptocurrency",
		Answers: []Answer{
			{Text: "Blockchain technology", Points: 40, Rank: 1},
			{Text: "Mining process", Points: 30, Rank: 2},
			{Text: "Digital wallets", Points: 25, Rank: 3},
			{Text: "NFTs", Points: 20, Rank: 4},
			{Text: "Trading strategies", Points: 15, Rank: 5},
			{Text: "Market value", Points: 10, Rank: 6},
			{Text: "Future predictions", Points: 5, Rank: 7},
			{Text: "Technical analysis", Points: 3, Rank: 8},
		},
	},
	{
		ID:       5,
		Category: "Social Media",
		Prompt:   "What's the biggest red flag on someone's social media profile?",
		Answers: []Answer{
			{Text: "Only gym selfies", Points: 40, Rank: 1},
			{Text: "MLM posts", Points: 30, Rank: 2},
			{Text: "Pictures with their ex", Points: 25, Rank: 3},
			{Text: "Daily inspirational quotes", Points: 20, Rank: 4},
			{Text: "Vague-posting about drama", Points: 15, Rank: 5},
			{Text: "No pictures of friends", Points: 10, Rank: 6},
			{Text: "Oversharing", Points: 5, Rank: 7},
			{Text: "Fake motivational content", Points: 3, Rank: 8},
		},
	},
	{
		ID:       6,
		Category: "Streaming",
		Prompt:   "What makes a streamer instantly annoying?",
		Answers: []Answer{
			{Text: "Begging for follows", Points: 40, Rank: 1},
			{Text: "Fake reactions", Points: 30, Rank: 2},
			{Text: "Ignoring chat", Points: 25, Rank: 3},
			{Text: "Loud intro music", Points: 20, Rank: 4},
			{Text: "Complaining about viewers", Points: 15, Rank: 5},
			{Text: "Weird donation voice", Points: 10, Rank: 6},
			{Text: "Same game for months", Points: 5, Rank: 7},
			{Text: "Toxic chat", Points: 3, Rank: 8},
		},
	},
	{
		ID:       7,
		Category: "Work Life",
		Prompt:   "What's the most annoying coworker behavior?",
		Answers: []Answer{
			{Text: "Microwaving fish", Points: 40, Rank: 1},
			{Text: "Taking credit", Points: 30, Rank: 2},
			{Text: "Loud phone calls", Points: 25, Rank: 3},
			{Text: "Never cleaning up", Points: 20, Rank: 4},
			{Text: "Constant complaining", Points: 15, Rank: 5},
			{Text: "Emails that should be texts", Points: 10, Rank: 6},
			{Text: "Passive-aggressive meetings", Points: 5, Rank: 7},
			{Text: "Stealing fridge food", Points: 3, Rank: 8},
		},
	},
	{
		ID:       8,
		Category: "Food",
		Prompt:   "What's the most controversial pizza topping?",
		Answers: []Answer{
			{Text: "Pineapple", Points: 40, Rank: 1},
			{Text: "Anchovies", Points: 30, Rank: 2},
			{Text: "Mushrooms", Points: 25, Rank: 3},
			{Text: "Olives", Points: 20, Rank: 4},
			{Text: "Pepperoni", Points: 15, Rank: 5},
			{Text: "Bell peppers", Points: 10, Rank: 6},
			{Text: "Onions", Points: 5, Rank: 7},
			{Text: "Extra cheese", Points: 3, Rank: 8},
		},
	},
	{
		ID:       9,
		Category: "Travel",
		Prompt:   "What's the worst part about flying?",
		Answers: []Answer{
			{Text: "Middle seat", Points: 40, Rank: 1},
			{Text: "Crying babies", Points: 30, Rank: 2},
			{Text: "Turbulence", Points: 25, Rank: 3},
			{Text: "Delayed flights", Points: 20, Rank: 4},
			{Text: "Security lines", Points: 15, Rank: 5},
			{Text: "Overpriced food", Points: 10, Rank: 6},
			{Text: "Lost luggage", Points: 5, Rank: 7},
			{Text: "Reclining seats", Points: 3, Rank: 8},
		},
	},
	{
		ID:       10,
		Category: "Friend Dynamics",
		Prompt:   "What's the most annoying thing in a group chat?",
		Answers: []Answer{
			{Text: "Never responding", Points: 40, Rank: 1},
			{Text: "Twenty separate messages", Points: 30, Rank: 2},
			{Text: "Leaving you on read", Points: 25, Rank: 3},
			{Text: "Meme spam", Points: 20, Rank: 4},
			{Text: "Drama at 2 AM", Points: 15, Rank: 5},
			{Text: "Screenshotting everything", Points: 10, Rank: 6},
			{Text: "Renaming the group", Points: 5, Rank: 7},
			{Text: "Adding random people", Points: 3, Rank: 8},
		},
	},
}
