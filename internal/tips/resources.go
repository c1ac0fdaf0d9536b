package tips

// Resource links are fixed rather than generated so that every URL shown
// is known to exist. The role is substituted into the titles only.
var resourceTemplates = map[Kind][]Resource{
	KindResume: {
		{ResourceVideo, "Resume Writing for %s Positions", "https://www.youtube.com/watch?v=BYUy1yvjHxE"},
		{ResourceVideo, "Top %s Resume Tips", "https://www.youtube.com/watch?v=6bJ5CszY5QU"},
		{ResourceArticle, "How to Write a Great %s Resume", "https://www.indeed.com/career-advice/resumes-cover-letters/software-engineer-resume"},
		{ResourceArticle, "Resume Tips for %s Professionals", "https://www.linkedin.com/advice/3/how-can-you-make-your-software-engineer-resume-stand"},
	},
	KindInterview: {
		{ResourceVideo, "Interview Tips for %s Roles", "https://www.youtube.com/watch?v=1mHjMNZZvFo"},
		{ResourceVideo, "How to Ace Your %s Interview", "https://www.youtube.com/watch?v=0DNH4T4J--4"},
		{ResourceArticle, "Top %s Interview Questions", "https://www.glassdoor.com/blog/software-engineer-interview-questions/"},
		{ResourceArticle, "Preparing for Your %s Interview", "https://www.themuse.com/advice/software-engineer-interview-prep-guide"},
	},
}

// sectionTitles are the headings the model is asked to fill, in order.
var sectionTitles = map[Kind][]string{
	KindResume: {
		"Key Skills",
		"Experience to Highlight",
		"Resume Structure",
		"Common Mistakes to Avoid",
	},
	KindInterview: {
		"Common Questions",
		"Technical Preparation",
		"Questions to Ask",
		"Demonstrate Your Skills",
		"Mistakes to Avoid",
	},
}

func resourcesFor(k Kind, role string) []Resource {
	tmpl := resourceTemplates[k]
	out := make([]Resource, len(tmpl))
	for i, r := range tmpl {
		out[i] = Resource{Kind: r.Kind, Title: sprintfRole(r.Title, role), URL: r.URL}
	}
	return out
}
