package content

// defaultTemplates is synthesized and persisted when messages.json does not
// exist yet. The catalog has no equivalent default: a missing kaomoji file
// is fatal to any content-producing call.
func defaultTemplates() *Templates {
	return &Templates{
		Groups: map[string][]string{
			"greetings": {
				"Hello world! {kaomoji}",
				"Good day everyone! {kaomoji}",
				"Kaomoji of the hour! {kaomoji}",
				"Sending good vibes {kaomoji}",
				"Hope you're having a great day! {kaomoji}",
				"Greetings, Twitter friends! {kaomoji}",
			},
			"moods": {
				"Feeling happy today {kaomoji}",
				"Having a relaxing day {kaomoji}",
				"Energetic vibes {kaomoji}",
				"Just chilling {kaomoji}",
				"Feeling playful {kaomoji}",
				"So sleepy today {kaomoji}",
				"Food cravings hitting hard {kaomoji}",
				"Feeling loved {kaomoji}",
				"Surprised by how the day went {kaomoji}",
			},
			"weather": {
				"Sunny day kaomoji {kaomoji}",
				"Rainy day mood {kaomoji}",
				"Cozy weather outside {kaomoji}",
				"Perfect weather for kaomojis {kaomoji}",
				"Snow day vibes {kaomoji}",
				"Staying cool in this heat {kaomoji}",
			},
			"weekdays": {
				"Monday motivation {kaomoji}",
				"Taco Tuesday {kaomoji}",
				"Wednesday wisdom {kaomoji}",
				"Thursday thoughts {kaomoji}",
				"Friday feelings {kaomoji}",
				"Saturday fun {kaomoji}",
				"Sunday relaxation {kaomoji}",
			},
			"times": {
				"Morning kaomoji vibes {kaomoji}",
				"Afternoon pick-me-up {kaomoji}",
				"Evening wind-down {kaomoji}",
				"Late night thoughts {kaomoji}",
			},
			"seasonal": {
				"Spring is in the air {kaomoji}",
				"Summer state of mind {kaomoji}",
				"Autumn leaves falling {kaomoji}",
				"Winter cozy hours {kaomoji}",
				"Perfect season for kaomojis {kaomoji}",
			},
			"activities": {
				"Reading with kaomojis {kaomoji}",
				"Coding session in progress {kaomoji}",
				"Gaming time {kaomoji}",
				"Music appreciation {kaomoji}",
				"Creative mode activated {kaomoji}",
			},
		},
		Responses: map[string][]string{
			"general": {
				"Thanks for the mention! {kaomoji}",
				"Hello there! {kaomoji}",
				"Nice to meet you! {kaomoji}",
				"Thanks for reaching out {kaomoji}",
				"Hope you're having a great day! {kaomoji}",
			},
			"happy": {
				"Glad you're happy! {kaomoji}",
				"Happiness looks good on you! {kaomoji}",
				"Keep smiling! {kaomoji}",
			},
			"sad": {
				"Sending virtual hugs {kaomoji}",
				"Things will get better {kaomoji}",
				"Here's a kaomoji to cheer you up {kaomoji}",
			},
			"question": {
				"Great question! {kaomoji}",
				"Let me think about that {kaomoji}",
				"Here's a kaomoji for your question {kaomoji}",
			},
			"food": {
				"Yummy thoughts! {kaomoji}",
				"Food kaomojis are the best {kaomoji}",
				"Getting hungry now {kaomoji}",
			},
		},
		Hashtags: []string{
			"#kaomoji", "#emoji", "#kawaii", "#textart",
			"#cute", "#emoticons", "#TwitterBot", "#Japan",
			"#TextFaces", "#Unicode", "#AsciiArt", "#MoodOfTheDay",
			"#ExpressYourself", "#DigitalArt", "#TypeArt",
		},
	}
}
