package argmap

import "fmt"

// Output budgets per pipeline step.
const (
	mainClaimMaxTokens  = 1024
	diagramMaxTokens    = 2048
	similarityMaxTokens = 1024
)

func mainClaimPrompt(transcript string) string {
	return fmt.Sprintf("given the following transcript, in one sentence what is the main claim of the debate around?\n\n%s", transcript)
}

func generateDiagramPrompt(transcript, mainClaim string) string {
	return fmt.Sprintf(`Given the following debate and transcript, please in a mermaid diagram write out the main points centered around this main claim below.
If subclaims have counter arguments, please make sure that these are mentioned
The style of writing should be concise and informative, such that someone reading this for the first time could easily understand it
*Map out your evidential relationships using Wigmore's symbols *
* Connect them with arrows showing logical relationships * *
* *Use green lines for supporting evidence *
* Use red lines for opposing evidence

Main claim: %s

Transcript:
%s`, mainClaim, transcript)
}

func improveDiagramPrompt(diagram string) string {
	return fmt.Sprintf(`please make this diagram more easily visible. use colors that work well together. Also, make sure to structure counter-arguments as opposing main subpoints. please keep it in a tree format

Original diagram:
%s`, diagram)
}

func descriptivePrompt(diagram, transcript string) string {
	return fmt.Sprintf(`given the following graph and transcript, please make the graph text more descriptive and explanatory to the argument. It should be that you can read this argument easily from the main claim. Use simple language, avoid ai jargon Please also make the main claim a question. Include only the code, nothing else

Original diagram:
%s

Original transcript:
%s`, diagram, transcript)
}

func editDiagramPrompt(diagram, instruction string) string {
	return fmt.Sprintf(`Please modify the following Mermaid diagram based on these voice instructions. Keep the same style and format, but implement the requested changes.

Current Mermaid diagram:
%s

Voice instructions:
%s

Please provide only the modified Mermaid diagram code, nothing else.`, diagram, instruction)
}

func similarityPrompt(transcript, diagram string) string {
	return fmt.Sprintf(`Compare the semantic similarity between this transcript and the mermaid diagram that represents it.
Return only a number between 0 and 1, where 1 means perfect semantic similarity and 0 means completely different.
Consider the main ideas, supporting points, and relationships between concepts.

Transcript:
%s

Mermaid Diagram:
%s

Return only the number, no other text.`, transcript, diagram)
}
