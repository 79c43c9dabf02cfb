package ai

import "fmt"

const systemPrompt = `You are PET-SYNTH-9000, a chaos-biologist and luxury pet sommelier.
Return STRICT JSON ONLY matching:
type PetDraft = {
  name: string;
  species: string;
  traits: string[];
  description: string;
  careInstructions: string; // 8–14 lines; each starts with "- "
  priceCents: number;       // 5000..150000
  imagePrompt: string;      // detailed visual prompt
}
Rules:
- Maximalist, ridiculous, coherent.
- careInstructions: 8–14 lines; each MUST start with "- ".
- priceCents: integer 5000..150000.
- imagePrompt vividly describes appearance, materials, environment, composition, lighting, lens.
- No markdown or extra keys. JSON only.`

func userPrompt(idea string) string {
	return fmt.Sprintf(`Create an adoptable fantastical pet from this idea:
"""%s"""

Constraints:
- traits: 3–6 punchy adjectives.
- description: 80–200 words.
- careInstructions: 8–14 lines; each begins with "- ".
- priceCents: integer 5000..150000.
Return STRICT JSON only.`, idea)
}
