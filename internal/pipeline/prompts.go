package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Prompt builders for the five stages. Each template enumerates the
// exact JSON shape the stage declares so shape validation has something
// concrete to check against.

func extractPrompt(userInput string) string {
	return fmt.Sprintf(`Analyze the following user input and extract structured information:

User Input: "%s"

Extract the following information:
1. Date/Time: When does the user want to do these activities? (e.g., "Saturday", "this weekend", "tomorrow")
2. Location: Where is the user looking for activities? (EXACT city name mentioned by user)
3. Interests: What types of activities is the user interested in?
   Choose from: dinner, restaurant, outdoor, movie, event, entertainment
4. Additional context: Any specific preferences mentioned (budget, mood, group size, etc.)

CRITICAL FOR LOCATION:
- Extract the EXACT city name mentioned by the user
- Do NOT default to New York or any other city if not mentioned
- If truly no location mentioned, use "not specified"

IMPORTANT: Return ONLY a valid JSON object with this exact structure:
{
    "date": "extracted date or 'not specified'",
    "location": "EXACT city name from user input or 'not specified'",
    "interests": ["list", "of", "interests"],
    "context": "any additional relevant information"
}

Do not include any explanation, markdown formatting, or additional text.`, userInput)
}

func planPrompt(intent ParsedIntent) string {
	return fmt.Sprintf(`Based on the user's structured request, create a search strategy for activities.

User Request:
- Date: %s
- Location: %s
- Interests: %s
- Context: %s

Analyze this information and decide which activity categories should be searched.
Available categories:
- restaurants: For dining experiences
- movies: For film entertainment
- events: For local events, concerts, festivals
- outdoor: For parks, trails, outdoor activities

Consider:
1. What categories match the user's stated interests?
2. What categories would create a balanced day/evening?
3. What makes sense for the time of day/week mentioned?
4. Should we prioritize certain categories?

Return ONLY a valid JSON object with this structure:
{
    "categories": ["category1", "category2", ...],
    "priority": "which category to emphasize (optional)",
    "reasoning": "brief explanation of strategy"
}

Do not include markdown formatting or additional text.`,
		intent.Date, intent.Location, strings.Join(intent.Interests, ", "), intent.Context)
}

func discoverPrompt(intent ParsedIntent, strategy SearchStrategy) string {
	interests := strings.Join(intent.Interests, ", ")
	if interests == "" {
		interests = "general fun"
	}
	location := intent.Location
	return fmt.Sprintf(`You are a local expert SPECIFICALLY for %s. Based on your knowledge, recommend realistic activities for %s.

CRITICAL REQUIREMENT: ALL recommendations MUST be located in or immediately near %s.
Do NOT suggest places from other cities.
Focus ONLY on what exists in %s.

Categories: %s
User interests: %s

Provide 3-5 REAL recommendations per category that actually exist in or near %s:

RESTAURANTS: Suggest actual popular restaurants, cafes, or dining spots in %s
MOVIES: List current movies in theaters - these can be anywhere
OUTDOOR: Recommend real parks, landmarks, trails, or outdoor venues specifically in %s
EVENTS: Suggest seasonal activities, festivals, or events typical for %s during %s

For each activity return JSON with:
- name: Specific real name (NOT "Local Restaurant #1" or generic names)
- type: restaurant/movie/outdoor/event
- rating: 3.5-5.0 stars
- details: Brief description that includes location context

VALIDATION: Before finalizing, verify each restaurant/outdoor/event is actually in %s.
Remove any suggestions from other cities.

Return ONLY a JSON array with NO additional text:
[
  {"name": "Real Place Name", "type": "restaurant", "rating": 4.5, "details": "Description including location"},
  ...
]`,
		location, intent.Date, location, location,
		strings.Join(strategy.Categories, ", "), interests,
		location, location, location, location, intent.Date, location)
}

func curatePrompt(candidates []ActivityCandidate, intent ParsedIntent) string {
	blob, _ := json.MarshalIndent(candidates, "", "  ")
	return fmt.Sprintf(`Review the following discovered activities and select the TOP 3-5 best options
for the user's itinerary.

LOCATION: %s
User Interests: %s
Context: %s

Discovered Activities:
%s

CRITICAL: Verify ALL selected activities (except movies) are actually located in %s.
If any activity appears to be from a different city, DO NOT select it.

Evaluation criteria:
1. LOCATION ACCURACY - Must be in %s (except movies)
2. Match with user interests
3. Rating/quality (prioritize 4+ stars)
4. Variety (don't pick all the same type)
5. Logical flow (activities that work well together)

Return ONLY a JSON object with this structure:
{
    "selected": [
        {
            "name": "activity name",
            "type": "activity type",
            "rating": rating,
            "details": "description",
            "reason": "why this was selected"
        }
    ],
    "curation_notes": "brief explanation of selections"
}

Do not include markdown formatting.`,
		intent.Location, strings.Join(intent.Interests, ", "), intent.Context,
		string(blob), intent.Location, intent.Location)
}

func summarizePrompt(curation CurationResult, intent ParsedIntent) string {
	blob, _ := json.MarshalIndent(curation.Selected, "", "  ")
	return fmt.Sprintf(`Create a friendly, engaging itinerary based on these curated activities.

Location: %s
Date: %s

Curated Activities:
%s

Curation Notes: %s

Write a natural, conversational itinerary that includes:
1. A welcoming introduction
2. Each activity with:
   - Name and type (use emojis!)
   - Rating if available
   - Brief description
   - Why it's a great choice
3. A friendly closing with any final tips

Tone: Warm, enthusiastic, helpful
Length: 200-350 words
Format: Use bullet points or numbered list

Do NOT return JSON. Return a friendly text itinerary ready to present to the user.`,
		intent.Location, intent.Date, string(blob), curation.CurationNotes)
}
