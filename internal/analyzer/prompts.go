package analyzer

const coreSystemPrompt = `You are a chat analyst. Return ONLY valid JSON, no markdown.`

// coreUserPrompt takes: participant count, participant list, message lines.
const coreUserPrompt = `Analyze this group chat (English/Hinglish). %d people: %s

MESSAGES:
%s

Provide CONCISE analysis:

1. PERSONALITY (for each person):
   - Style: formal/casual/energetic/calm
   - Tone: supportive/sarcastic/humorous/dramatic
   - 3 key traits

2. TOP ROLES (top scorer for each, 0-100):
   - Therapist: Most supportive
   - Hype Man: Most encouraging
   - Comedian: Funniest
   - Drama Queen: Most dramatic
   - Meme Lord: Best memes
   - Ghost: Lurks then appears
   - Voice of Reason: Most logical
   - Chaos Agent: Creates fun chaos

3. D&D ALIGNMENT (one per person):
   Lawful/Neutral/Chaotic + Good/Neutral/Evil
   Based on: structure vs spontaneity + supportive vs teasing

4. RELATIONSHIPS:
   - Top 2-3 closest pairs
   - Bond type + why

Return ONLY valid JSON:
{
  "personalities": [{"name": "X", "style": "...", "tone": "...", "traits": ["a","b","c"]}],
  "roles": {"therapist": {"name": "X", "score": 90, "reason": "brief"}, "hype_man": {"name": "X", "score": 85, "reason": "..."}, ...},
  "alignments": [{"name": "X", "alignment": "Chaotic Good", "reason": "brief"}],
  "pairs": [{"pair": ["X","Y"], "bond": "type", "reason": "brief"}]
}`

const contentSystemPrompt = `You are a comedy curator finding the WILDEST moments. No filter. Find the funniest, darkest, weirdest stuff. Return ONLY valid JSON, no markdown.`

// contentUserPrompt takes: participant count, participant list, message lines.
const contentUserPrompt = `Analyze chat content. %d people: %s

MESSAGES:
%s

Find the ABSOLUTE FUNNIEST, WILDEST, and MOST UNHINGED moments. Ignore boring stuff.

1. GROUP VOCABULARY (15-25 unique words/phrases):
   Find words, phrases, or expressions that are UNIQUE to this group:
   - Word/phrase (e.g., "bruv", "fr fr", "no cap", custom nicknames, inside joke phrases)
   - Meaning/context (what it means in the group)
   - Usage frequency (high/medium/low)
   - Who uses it most (name or "everyone")
   - Example usage (brief)

2. TOP TOPICS (5-7 topics):
   For each topic find:
   - Topic name (e.g., "Weekend Plans", "Food Drama", "Roast Session")
   - Brief description
   - Key participants (who talked most about it)
   - Message count (approximate)
   - Vibe (funny/serious/chaotic/etc)

3. WHO SAID THIS QUIZ (15-20 items):
   Pick the FUNNIEST, most CHARACTERISTIC quotes and create:
   - The quote (exact text, 10-150 chars)
   - Context (what was happening)
   - Correct answer (who said it)
   - 2-3 wrong answer options (other participant names)
   - Why it's funny/characteristic

4. DANKEST MESSAGES (25-35 UNIQUE moments):
   Find 25-35 COMPLETELY DIFFERENT messages. Each message text must appear ONLY ONCE in the entire list.

   For EACH message:
   - Category: "Savage Roast" / "Dark Humor" / "Random/WTF" / "Cursed" / "Unhinged" / "Cringe" / "Big Brain" / "Mic Drop" / "Inside Joke" / "Ratio Moment" / "Plot Twist" / "Villain Arc"
   - Sender: who said it
   - Message: EXACT full quote (10-150 chars) - MUST BE DIFFERENT from all other messages in list
   - Why: brief explanation why it's dank
   - Dank score: 70-100

   CRITICAL RULES:
   - NO message text can appear more than once
   - Find 25-35 DIFFERENT messages, not the same messages with different categories
   - Check your list before returning - if any message repeats, remove the duplicate

5. SENTIMENT:
   - Overall mood
   - Energy level
   - Group vibe

Return ONLY valid JSON:
{
  "vocabulary": [{"word": "bruv", "meaning": "casual way to say bro", "frequency": "high", "main_user": "Bob", "example": "bruv this is wild"}],
  "topics": [{"topic": "Weekend Plans", "description": "Planning the squad meetup", "participants": ["Alice", "Bob"], "message_count": 45, "vibe": "excited"}],
  "who_said_this": [{"quote": "the funny message", "context": "during argument about pizza", "correct_answer": "Bob", "wrong_answers": ["Alice", "Charlie"], "why_funny": "classic Bob move"}],
  "dankest_messages": [{"category": "Savage Roast", "sender": "Alice", "message": "full exact unique quote here", "why": "destroyed Bob with facts", "dank_score": 95}],
  "sentiment": {"mood": "chaotic", "energy": "high", "vibe": "unhinged"}
}`
