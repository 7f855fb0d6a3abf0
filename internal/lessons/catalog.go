package lessons

var catalog = []Lesson{
	{
		ID:          1,
		Title:       "Introduction to AI-Assisted Programming",
		Description: "Learn the fundamentals of coding with AI tools and understand how they can accelerate your development process.",
		Duration:    "15 min",
		Difficulty:  Beginner,
		Topics:      []string{"AI Tools Overview", "Setting up your environment", "First AI-generated code"},
		Exercise: Exercise{
			Prompt: "You need Node.js installed before you can follow along. " +
				"Write the question you would ask your AI assistant to get the exact terminal command.",
			RuleSetID:   "terminal-command",
			Placeholder: "What is the terminal command to ...",
			MaxLength:   DefaultMaxLength,
		},
	},
	{
		ID:          2,
		Title:       "Prompt Engineering for Code Generation",
		Description: "Master the art of writing effective prompts to get better code suggestions from AI assistants.",
		Duration:    "25 min",
		Difficulty:  Beginner,
		Topics:      []string{"Prompt structure", "Context setting", "Iterative refinement"},
		Exercise: Exercise{
			Prompt: "You are stuck in your editor and cannot find the setting you want. " +
				"Write a prompt that gives the assistant enough context to guide you to the next click.",
			RuleSetID:   "navigation-prompt",
			Placeholder: "I'm in ... and I see ... I want to ...",
			MaxLength:   DefaultMaxLength,
		},
	},
	{
		ID:          3,
		Title:       "Debugging with AI Assistance",
		Description: "Learn how to leverage AI tools to identify, understand, and fix bugs in your code efficiently.",
		Duration:    "30 min",
		Difficulty:  Intermediate,
		Topics:      []string{"Error analysis", "AI debugging strategies", "Code review with AI"},
		Exercise: Exercise{
			Prompt: "A button exists in the HTML but never appears on the page. " +
				"The stylesheet contains `.cta { display: none; }`. Explain what is wrong and how to fix it.",
			RuleSetID:   "css-hidden-element",
			Placeholder: "The button is not visible because ...",
			MaxLength:   DefaultMaxLength,
		},
	},
	{
		ID:          4,
		Title:       "Building Full Applications with AI",
		Description: "Create complete web applications using AI assistance for both frontend and backend development.",
		Duration:    "45 min",
		Difficulty:  Advanced,
		Topics:      []string{"Project planning", "Component generation", "API development"},
		Exercise: Exercise{
			Prompt:      "Write the HTML for a div that says Hello world. Make sure the element is complete.",
			RuleSetID:   "html-div",
			Placeholder: "<div>...",
			MaxLength:   DefaultMaxLength,
		},
	},
	{
		ID:          5,
		Title:       "Best Practices and Ethics",
		Description: "Understand the responsible use of AI in programming and learn industry best practices.",
		Duration:    "20 min",
		Difficulty:  Intermediate,
		Topics:      []string{"Code quality", "Security considerations", "Ethical AI use"},
		Exercise: Exercise{
			Prompt: "Your assistant generated code with an API key pasted directly into a source file. " +
				"Where should the key live instead?",
			RuleSetID:   "api-key-storage",
			Placeholder: "Store the key in ...",
			MaxLength:   DefaultMaxLength,
		},
	},
}
