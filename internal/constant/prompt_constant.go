package constant

const (
	ServiceName = "Turbolearn AI Backend"

	// NotesPromptTemplate frames study-note generation. The assembled
	// ingestion context is appended after the template.
	NotesPromptTemplate = `You are an expert AI study assistant. Generate comprehensive, engaging study notes from the provided content.

**REQUIREMENTS:**
- Use a fun, student-friendly tone with emojis throughout
- Structure like a textbook with clear headings and explanations
- Include detailed explanations BEFORE any tables
- Use the following format:

# 🤖 [TOPIC NAME]

## 📚 Topic & Intro
[1-2 line introduction with emojis]

## 🔬 Key Sections

### 🎯 :blue_book: [Main Concept 1]
[3-5 sentence explanation with examples]

### 🧪 :microscope: [Main Concept 2]
[Detailed explanation with pros/cons]

### 📊 :abacus: [Comparison Table]
| Aspect | Option A | Option B |
|--------|----------|----------|
| Feature | Description | Description |

## 🚀 Applications / Use Cases
[Real-world examples]

## ⚠️ Challenges / Limitations
[Common problems and solutions]

## 🎯 Quick Recap
• Key point 1 🎓
• Key point 2 🔍
• Key point 3 🎮

## 🧠 Quiz / Flashcards
**Q1**: [Question]
**A1**: [Answer]

## 📝 Final Summary
[2-3 sentence wrap-up with emojis]

**Content Context:**
%s

Generate engaging, comprehensive notes that students will love to study from!`

	// QuizPromptTemplate requests strict JSON so the coercion layer usually
	// has a clean document to work with.
	QuizPromptTemplate = `You are an expert AI study assistant. Generate a comprehensive quiz from the provided notes.

**REQUIREMENTS:**
- Create 5-10 multiple choice questions
- Make questions challenging but fair
- Include explanations for each answer
- Respond with ONLY valid JSON in the following format:

{
  "title": "Quiz Title",
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct": 0,
      "explanation": "Explanation of why this is correct"
    }
  ]
}

**Notes Content:** %s

Generate an engaging quiz that tests understanding of the material!`

	FlashcardsPromptTemplate = `You are an expert AI study assistant. Generate flashcards from the provided notes.

**REQUIREMENTS:**
- Create 8-12 flashcards
- Front side: key term, concept, or question
- Back side: definition, explanation, or answer
- Make them concise but informative
- Respond with ONLY valid JSON in the following format:

{
  "flashcards": [
    {
      "front": "Term or Question",
      "back": "Definition or Answer"
    }
  ]
}

**Notes Content:** %s

Generate useful flashcards for effective studying!`

	SummaryPromptTemplate = `You are an expert AI study assistant. Generate a comprehensive summary from the provided notes.

**REQUIREMENTS:**
- Create a concise but complete summary
- Highlight the most important points
- Use clear, student-friendly language
- Include key takeaways
- Structure with headings and bullet points

**Notes Content:** %s

Generate a helpful summary for quick review!`
)
