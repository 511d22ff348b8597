package state

import "orca-backend/models"

// SeedCurriculum returns a fresh copy of the built-in curriculum chain.
// The first node is unlocked, the rest locked, each depending on its predecessor.
func SeedCurriculum() []models.CourseNode {
	return []models.CourseNode{
		{
			ID:               "000",
			Title:            "The Vibe Protocol",
			Description:      "Stop coding from scratch. Start Vibe Coding. The philosophy of AI-First Architecture.",
			XPReward:         150,
			ReputationReward: 25,
			Status:           models.NodeUnlocked,
			Category:         models.NodeFoundation,
			Content: "### The Paradigm Shift\n" +
				"Old Way: `npx create-react-app`, configure Webpack, debug CSS, deploy to Vercel.\n" +
				"**The Vibe Way:** Open AI Studio, Prompt, Deploy to Google Cloud.\n\n" +
				"### The Solvent\n" +
				"1.  **Identify Friction:** Find a manual task.\n" +
				"2.  **Prompt the Solvent:** Use Gemini to write the full app.\n" +
				"3.  **Deploy & Scale:** One-click deploy to Cloud Run.\n\n" +
				"**Your Goal:** Don't write code. Architect solutions.",
			Tasks: []models.TaskItem{
				{ID: "t1", Text: "Go to https://aistudio.google.com/apps"},
				{ID: "t2", Text: "Select the latest Gemini Pro model in the model dropdown"},
			},
			StoryScenarios: []models.StoryScenario{
				{
					Title:     "The Client Request",
					Situation: "A client needs a landing page. They ask you to use Next.js and Tailwind.",
					Options: []models.StoryOption{
						{Text: "Spend 3 hours setting up the repo and dependencies.", IsCorrect: false, Feedback: "Too slow. You are thinking like a coder, not an architect."},
						{Text: "Open AI Studio, prompt: 'Build a high-converting landing page using React/Tailwind in a single file', then deploy.", IsCorrect: true, Feedback: "Correct. Speed wins. The tool doesn't matter, the result does."},
						{Text: "Hire a freelancer.", IsCorrect: false, Feedback: "You gave away your margin."},
					},
				},
			},
			Quiz: []models.QuizQuestion{
				{
					Question:     "What is the primary tool for Vibe Coding?",
					Options:      []string{"VS Code", "Google AI Studio", "Terminal", "StackOverflow"},
					CorrectIndex: 1,
					Explanation:  "AI Studio is your IDE, compiler, and deployment engine in one.",
				},
			},
		},
		{
			ID:               "101",
			Title:            "The Architect's Environment",
			Description:      "Navigating Google AI Studio & The Deployment Rocket.",
			XPReward:         100,
			ReputationReward: 10,
			Status:           models.NodeLocked,
			Category:         models.NodeFoundation,
			DependsOn:        "000",
			Content: "### The Cockpit\n" +
				"We use **Google AI Studio** to build and deploy.\n\n" +
				"### The Workflow\n" +
				"1.  **Prompting:** You don't write code. You write *specifications* (Prompts).\n" +
				"2.  **Previewing:** The AI generates a functional React app in the right pane.\n" +
				"3.  **Deploying:** The \"Rocket Icon\" in the top right pushes your code to Google Cloud Run.\n\n" +
				"### No Local Environment\n" +
				"You don't need Node.js or Git for the V0.1.",
			Tasks: []models.TaskItem{
				{ID: "t1", Text: "Copy this prompt:", CodeSnippet: "Create a modern React dashboard for a crypto tracker using Tailwind CSS. Use Lucide icons. Mock data."},
				{ID: "t2", Text: "Paste into AI Studio and hit Run."},
			},
			StoryScenarios: []models.StoryScenario{
				{
					Title:     "The Blank Screen",
					Situation: "You want to build a To-Do list app. You open AI Studio.",
					Options: []models.StoryOption{
						{Text: "Start typing 'import React from react...'", IsCorrect: false, Feedback: "Stop. You are doing manual labor."},
						{Text: "Type: 'Create a To-Do list app with add/delete functionality and persistent local storage.'", IsCorrect: true, Feedback: "Correct. Let the model do the heavy lifting."},
					},
				},
			},
			Quiz: []models.QuizQuestion{
				{
					Question:     "Where do you deploy your app in AI Studio?",
					Options:      []string{"Terminal command", "The Rocket Icon (Top Right)", "Download ZIP and upload to FTP", "You can't"},
					CorrectIndex: 1,
					Explanation:  "The Rocket Icon initiates the Cloud Run deployment sequence.",
				},
			},
		},
		{
			ID:               "301",
			Title:            "Ship to Production",
			Description:      "Cloud Run, Billing Setup, and Orca Integration.",
			XPReward:         1000,
			ReputationReward: 100,
			Status:           models.NodeLocked,
			Category:         models.NodeGrowth,
			IsProOnly:        true,
			DependsOn:        "101",
			Content: "### The Deployment Sequence\n" +
				"Turning a prompt into a URL.\n\n" +
				"1.  **Toolbar:** Click the **Rocket Icon** (Deploy) in AI Studio.\n" +
				"2.  **Project:** Select \"Create New Project\" and name it after your app.\n" +
				"3.  **Billing:** If prompted, link a Billing Account at https://console.cloud.google.com/billing/\n" +
				"4.  **Redeploy:** Click Deploy again. Wait 2-3 minutes.\n" +
				"5.  **The URL:** You will get a link ending in `.run.app`.\n" +
				"6.  **Ship:** Copy that URL, come back to ORCA, and click \"Ship to Prod\".",
			Tasks: []models.TaskItem{
				{ID: "t1", Text: "Set up Billing at console.cloud.google.com/billing"},
				{ID: "t2", Text: "Deploy App in AI Studio and copy the .run.app URL"},
			},
			StoryScenarios: []models.StoryScenario{
				{
					Title:     "Deployment Stalled",
					Situation: "You clicked deploy, but it says 'Billing Account Required'.",
					Options: []models.StoryOption{
						{Text: "Give up.", IsCorrect: false, Feedback: "Never."},
						{Text: "Go to Cloud Console, link your credit card, and retry.", IsCorrect: true, Feedback: "Correct. Cloud Run needs a billing account, even for the free tier."},
					},
				},
			},
			Quiz: []models.QuizQuestion{
				{
					Question:     "What is the domain extension for a Google Cloud Run app?",
					Options:      []string{".com", ".run.app", ".google.com", ".vercel.app"},
					CorrectIndex: 1,
					Explanation:  "Google Cloud Run services always end in .run.app by default.",
				},
			},
		},
		{
			ID:               "401",
			Title:            "The Paywall Logic",
			Description:      "Prompting for Profit. Injecting Stripe.",
			XPReward:         600,
			ReputationReward: 50,
			Status:           models.NodeLocked,
			Category:         models.NodeGrowth,
			IsProOnly:        true,
			DependsOn:        "301",
			Content: "### The Checkpoint\n" +
				"You need to prompt the AI to build a gate.\n\n" +
				"### The Logic\n" +
				"1.  **Create Link:** Stripe Dashboard -> Products -> Create Payment Link.\n" +
				"2.  **Inject:** Give the URL to Gemini.\n" +
				"3.  **Verify:** Ensure the button redirects correctly.",
			Tasks: []models.TaskItem{
				{ID: "t1", Text: "Create a Stripe Payment Link"},
				{ID: "t2", Text: "Prompt Gemini: 'Add a Pro button that links to [URL]'"},
			},
			StoryScenarios: []models.StoryScenario{
				{
					Title:     "The Feature Gate",
					Situation: "You want to charge for the 'Dark Mode' feature.",
					Options: []models.StoryOption{
						{Text: "Prompt: 'Make dark mode cost $5.'", IsCorrect: false, Feedback: "Too vague. The AI can't process payments magically."},
						{Text: "Prompt: 'Disable the Dark Mode toggle. Replace it with a button that opens my Stripe Link.'", IsCorrect: true, Feedback: "Correct. Simple redirect logic is the easiest MVP monetization."},
					},
				},
			},
			Quiz: []models.QuizQuestion{
				{
					Question:     "What is the fastest way to monetize a Vibe App?",
					Options:      []string{"Build a full cart system", "Stripe Payment Links", "Crypto wallet integration", "AdSense"},
					CorrectIndex: 1,
					Explanation:  "Payment Links require zero backend code. Just a URL redirect.",
				},
			},
		},
	}
}
