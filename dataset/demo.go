package dataset

import (
	"fmt"
	"strings"
)

// demoTemplate carries the fields of one synthetic issue; render assembles
// them into the fixed Markdown contract.
type demoTemplate struct {
	input     string
	heading   string
	desc      string
	platform  string
	component string
	steps     []string
	expected  string
	actual    string
	logs      string
	tasks     []string
}

func render(t demoTemplate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", t.heading)
	fmt.Fprintf(&b, "### Description\n%s\n\n", t.desc)
	fmt.Fprintf(&b, "### Environment\n- **Platform**: %s\n- **Component**: %s\n\n", t.platform, t.component)
	b.WriteString("### Steps to Reproduce\n")
	for i, step := range t.steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(&b, "\n### Expected Behavior\n%s\n\n", t.expected)
	fmt.Fprintf(&b, "### Actual Behavior\n%s\n\n", t.actual)
	fmt.Fprintf(&b, "### Error Logs\n```\n%s\n```\n\n", t.logs)
	b.WriteString("### Proposed Tasks\n")
	for i, task := range t.tasks {
		fmt.Fprintf(&b, "- [ ] %s", task)
		if i < len(t.tasks)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var demoExamples = buildDemo()

func buildDemo() []Example {
	templates := []demoTemplate{
		{
			input:     "App crashes on login button tap",
			heading:   "Bug Report: App Crashes on Login Button Tap",
			desc:      "The application crashes when users tap the login button on the authentication screen.",
			platform:  "Mobile Application",
			component: "Authentication/Login",
			steps: []string{
				"Open the application",
				"Navigate to the login screen",
				"Enter credentials (any valid or invalid)",
				"Tap the login button",
				"Observe the crash",
			},
			expected: "The application should process the login attempt and either authenticate the user or display an error message.",
			actual:   "The application crashes immediately upon tapping the login button.",
			logs:     "// Add crash logs here",
			tasks: []string{
				"Investigate crash logs to identify root cause",
				"Add null checks for login button handler",
				"Implement proper error handling",
				"Add unit tests for login functionality",
				"Test fix on all supported platforms",
			},
		},
		{
			input:     "Database connection times out after 30 seconds",
			heading:   "Bug Report: Database Connection Timeout",
			desc:      "The database connection is timing out after 30 seconds, causing service disruption.",
			platform:  "Backend Service",
			component: "Database Layer",
			steps: []string{
				"Start the application server",
				"Initiate a database query",
				"Wait for 30 seconds",
				"Observe connection timeout error",
			},
			expected: "Database connections should be established within a reasonable timeframe (< 5 seconds) or properly handle long-running queries.",
			actual:   "All database connections timeout after exactly 30 seconds, indicating a configuration issue.",
			logs:     "Connection timeout after 30000ms",
			tasks: []string{
				"Review database connection pool configuration",
				"Check network connectivity between app and database",
				"Increase timeout value or implement retry logic",
				"Add connection health checks",
				"Monitor database server performance",
			},
		},
		{
			input:     "User profile picture not loading on homepage",
			heading:   "Bug Report: User Profile Picture Not Loading",
			desc:      "User profile pictures are not loading on the homepage, showing a placeholder or broken image instead.",
			platform:  "Web Application",
			component: "User Interface / Media",
			steps: []string{
				"Log into the application",
				"Navigate to the homepage",
				"Look at the user profile section",
				"Observe that the profile picture is not displayed",
			},
			expected: "The user's profile picture should load and display correctly on the homepage.",
			actual:   "Profile pictures show as broken images or placeholders.",
			logs:     "404 Not Found: /api/users/{id}/avatar",
			tasks: []string{
				"Verify image storage configuration",
				"Check image CDN connectivity",
				"Review CORS settings for image requests",
				"Implement fallback placeholder image",
				"Add image loading error handling",
			},
		},
		{
			input:     "Search feature returns no results for valid queries",
			heading:   "Bug Report: Search Returns No Results",
			desc:      "The search feature returns empty results even for queries that should match existing content.",
			platform:  "Web Application",
			component: "Search / Indexing",
			steps: []string{
				"Open the search page",
				"Enter a query known to match existing records",
				"Submit the search",
				"Observe an empty result list",
			},
			expected: "Matching records should be returned, ranked by relevance.",
			actual:   "The result list is always empty, regardless of the query.",
			logs:     "search index: 0 documents matched query",
			tasks: []string{
				"Verify the search index is populated",
				"Check the indexing pipeline for silent failures",
				"Add integration tests for common queries",
				"Add monitoring for index document counts",
			},
		},
		{
			input:     "API returns 500 error on user registration",
			heading:   "Bug Report: Registration Endpoint Returns 500",
			desc:      "The user registration endpoint fails with an internal server error for all requests.",
			platform:  "Backend Service",
			component: "API / User Management",
			steps: []string{
				"Send a POST request to /api/register with a valid payload",
				"Observe the 500 response",
			},
			expected: "The endpoint should create the user and return 201, or return a validation error for bad input.",
			actual:   "Every request fails with HTTP 500 and no error detail.",
			logs:     "ERROR: null value in column \"created_at\" violates not-null constraint",
			tasks: []string{
				"Reproduce the failure in a staging environment",
				"Fix the missing created_at default",
				"Return proper validation errors to clients",
				"Add regression tests for the registration flow",
			},
		},
		{
			input:     "Push notifications not working on mobile devices",
			heading:   "Bug Report: Push Notifications Not Delivered",
			desc:      "Push notifications are not being delivered to mobile devices despite successful API calls.",
			platform:  "Mobile Application",
			component: "Notifications",
			steps: []string{
				"Enable push notifications in app settings",
				"Trigger a notification event from the backend",
				"Wait for the notification on the device",
				"Observe that nothing arrives",
			},
			expected: "Notifications should arrive on the device within seconds of the triggering event.",
			actual:   "No notifications are delivered; the backend reports success.",
			logs:     "APNS response: 410 Unregistered",
			tasks: []string{
				"Check device token registration and refresh logic",
				"Verify push certificates are not expired",
				"Handle unregistered-token responses",
				"Add delivery tracking metrics",
			},
		},
		{
			input:     "Application slow when loading large dashboards",
			heading:   "Performance Issue: Slow Dashboard Loading",
			desc:      "Dashboards with many widgets take over 30 seconds to load, making the application feel unresponsive.",
			platform:  "Web Application",
			component: "Dashboard / Rendering",
			steps: []string{
				"Log in with an account that has a large dashboard",
				"Open the dashboard page",
				"Measure the time until the page is interactive",
			},
			expected: "Dashboards should become interactive within a few seconds, loading widgets progressively.",
			actual:   "The page blocks for 30+ seconds while all widget data loads up front.",
			logs:     "GET /api/dashboard/full took 31245ms",
			tasks: []string{
				"Profile the dashboard data endpoint",
				"Load widget data lazily or in parallel",
				"Add pagination for large widget lists",
				"Set a performance budget and track it",
			},
		},
		{
			input:     "High memory usage causes server restarts",
			heading:   "Performance Issue: Memory Growth Under Load",
			desc:      "The service's memory usage grows steadily under load until the process is killed and restarted.",
			platform:  "Backend Service",
			component: "Runtime / Resource Usage",
			steps: []string{
				"Run the service under sustained request load",
				"Monitor process memory over several hours",
				"Observe unbounded growth followed by an OOM kill",
			},
			expected: "Memory usage should plateau under steady load.",
			actual:   "Memory grows roughly linearly with uptime until the orchestrator restarts the process.",
			logs:     "OOMKilled: container exceeded memory limit (2Gi)",
			tasks: []string{
				"Capture heap profiles at intervals under load",
				"Identify and fix the leaking allocation site",
				"Add memory usage alerting before the kill threshold",
			},
		},
		{
			input:     "Add dark mode support to settings page",
			heading:   "Feature Request: Dark Mode Support",
			desc:      "Users should be able to switch the application to a dark color scheme from the settings page.",
			platform:  "Web Application",
			component: "User Interface / Theming",
			steps: []string{
				"Open the settings page",
				"Look for an appearance or theme option",
				"Observe that only the light theme is available",
			},
			expected: "A theme toggle should offer light, dark, and system-default options.",
			actual:   "No theme option exists; the application is always light.",
			logs:     "// Not applicable",
			tasks: []string{
				"Define dark palette tokens for all components",
				"Add the theme toggle to settings",
				"Persist the choice per user",
				"Respect the OS-level preference by default",
			},
		},
		{
			input:     "Implement CSV export for report data",
			heading:   "Feature Request: CSV Export for Reports",
			desc:      "Reports can currently only be viewed in the browser; users need to export the underlying data as CSV.",
			platform:  "Web Application",
			component: "Reporting / Export",
			steps: []string{
				"Open any report",
				"Look for an export or download action",
				"Observe that none exists",
			},
			expected: "An export action should download the report data as a CSV file matching the on-screen filters.",
			actual:   "There is no way to get report data out of the application.",
			logs:     "// Not applicable",
			tasks: []string{
				"Add a CSV export endpoint honoring report filters",
				"Stream large exports instead of buffering",
				"Add an export button to the report toolbar",
				"Document the CSV column format",
			},
		},
		{
			input:     "Readme instructions for local setup are outdated",
			heading:   "Documentation: Outdated Local Setup Instructions",
			desc:      "The README's local development setup instructions reference removed scripts and fail on a fresh checkout.",
			platform:  "Documentation",
			component: "README / Onboarding",
			steps: []string{
				"Clone the repository",
				"Follow the README setup section step by step",
				"Observe the setup failing at the removed bootstrap script",
			},
			expected: "A fresh checkout should reach a running development environment by following the README alone.",
			actual:   "Setup fails because the documented bootstrap script no longer exists.",
			logs:     "bash: ./scripts/bootstrap.sh: No such file or directory",
			tasks: []string{
				"Rewrite the setup section against the current tooling",
				"Add a CI job that exercises the documented steps",
				"Link troubleshooting notes for common failures",
			},
		},
		{
			input:     "Session expires too quickly and logs users out",
			heading:   "Bug Report: Premature Session Expiry",
			desc:      "User sessions expire after only a few minutes of inactivity, forcing frequent re-login.",
			platform:  "Web Application",
			component: "Authentication / Sessions",
			steps: []string{
				"Log into the application",
				"Leave the tab idle for five minutes",
				"Interact with the page again",
				"Observe a redirect to the login screen",
			},
			expected: "Sessions should last for the configured lifetime (hours, not minutes) with sliding renewal on activity.",
			actual:   "Sessions expire after roughly five minutes regardless of activity.",
			logs:     "session store: TTL=300s (expected 28800s)",
			tasks: []string{
				"Audit session TTL configuration across environments",
				"Implement sliding session renewal",
				"Add tests pinning the session lifetime",
			},
		},
	}

	examples := make([]Example, len(templates))
	for i, t := range templates {
		examples[i] = Example{Input: t.input, Output: render(t)}
	}
	return examples
}
