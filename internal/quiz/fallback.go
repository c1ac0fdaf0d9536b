package quiz

import "slices"

// CategoryTechnical selects the technical question set. Any other category
// is treated as soft skills.
const CategoryTechnical = "technical"

// CategorySoft is the conventional name for the soft-skills category.
const CategorySoft = "soft"

var technicalFallback = []Question{
	{
		ID:            1,
		Text:          "Which language is primarily used for web front-end development?",
		Options:       []string{"Python", "JavaScript", "Java", "C++"},
		CorrectAnswer: "JavaScript",
		Skill:         "front_end",
	},
	{
		ID:            2,
		Text:          "What does SQL stand for?",
		Options:       []string{"Structured Query Language", "Simple Question Language", "Standard Query Logic", "Sequential Query Loop"},
		CorrectAnswer: "Structured Query Language",
		Skill:         "database",
	},
	{
		ID:            3,
		Text:          "Which of these is NOT a Python web framework?",
		Options:       []string{"Django", "Flask", "FastAPI", "Express"},
		CorrectAnswer: "Express",
		Skill:         "back_end",
	},
	{
		ID:            4,
		Text:          "Which data structure uses LIFO (Last In First Out)?",
		Options:       []string{"Queue", "Stack", "Array", "Linked List"},
		CorrectAnswer: "Stack",
		Skill:         "data_structures",
	},
	{
		ID:            5,
		Text:          "Which of these is a NoSQL database?",
		Options:       []string{"PostgreSQL", "MySQL", "MongoDB", "Oracle"},
		CorrectAnswer: "MongoDB",
		Skill:         "database",
	},
}

var softFallback = []Question{
	{
		ID:   1,
		Text: "Which approach would be most effective when dealing with a disagreement in a team?",
		Options: []string{
			"Avoid the conflict altogether",
			"Listen to all perspectives and find a compromise",
			"Insist on your way if you believe it's right",
			"Let someone else make the decision",
		},
		CorrectAnswer: "Listen to all perspectives and find a compromise",
		Skill:         "conflict_resolution",
	},
	{
		ID:   2,
		Text: "What is the best way to handle receiving critical feedback?",
		Options: []string{
			"Defend your actions",
			"Ignore it if you disagree",
			"Listen, reflect, and respond constructively",
			"Immediately implement all suggestions",
		},
		CorrectAnswer: "Listen, reflect, and respond constructively",
		Skill:         "feedback_reception",
	},
	{
		ID:   3,
		Text: "When managing a project with a tight deadline, what should be prioritized?",
		Options: []string{
			"Adding extra features",
			"Working longer hours",
			"Clear communication and scope management",
			"Cutting quality assurance",
		},
		CorrectAnswer: "Clear communication and scope management",
		Skill:         "project_management",
	},
	{
		ID:   4,
		Text: "What is the best approach when you don't know the answer to a question in your area of expertise?",
		Options: []string{
			"Make an educated guess",
			"Admit you don't know but will find out",
			"Redirect to another topic",
			"Provide a vague response",
		},
		CorrectAnswer: "Admit you don't know but will find out",
		Skill:         "honesty",
	},
	{
		ID:   5,
		Text: "Which communication style is most effective in a professional setting?",
		Options: []string{
			"Direct and concise",
			"Detailed and comprehensive",
			"Casual and friendly",
			"It depends on the context and audience",
		},
		CorrectAnswer: "It depends on the context and audience",
		Skill:         "communication",
	},
}

// FallbackQuestions returns the built-in question set for category. The
// result is never empty and is safe to modify.
func FallbackQuestions(category string) []Question {
	if category == CategoryTechnical {
		return cloneQuestions(technicalFallback)
	}
	return cloneQuestions(softFallback)
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
