package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Marinasiq93/job-sprint-launchpad-sub000/internal/models"
)

// StructuredResultParser converts free-text AI feedback into the fixed
// JobFitAnalysisResult shape. Every field is filled by a ranked series of
// strategies: labeled section → list items → delimiter split → keyword
// sentences → static placeholder.
type StructuredResultParser struct{}

func NewStructuredResultParser() *StructuredResultParser {
	return &StructuredResultParser{}
}

// Each list field is capped at the first maxListItems matches.
const maxListItems = 5

const defaultScoreLabel = "Análise Realizada"

type fieldSpec struct {
	sectionHeaders   []string
	sentenceKeywords []string
	placeholder      string
}

var (
	skillsSpec = fieldSpec{
		sectionHeaders:   []string{"habilidades", "competências", "competencias", "skills"},
		sentenceKeywords: []string{"habilidade", "competência", "competencia", "conhecimento", "domínio", "dominio", "skill"},
		placeholder:      "Nenhuma habilidade específica identificada na análise",
	}
	experiencesSpec = fieldSpec{
		sectionHeaders:   []string{"experiências relevantes", "experiências", "experiencias", "experiência", "experiencia", "experience"},
		sentenceKeywords: []string{"experiência", "experiencia", "atuou", "trabalhou", "projeto", "vivência", "vivencia"},
		placeholder:      "Nenhuma experiência específica identificada na análise",
	}
	gapsSpec = fieldSpec{
		sectionHeaders:   []string{"lacunas", "gaps", "pontos de melhoria", "pontos de atenção", "pontos de atencao"},
		sentenceKeywords: []string{"falta", "ausência", "ausencia", "melhorar", "desenvolver", "aprimorar", "lacuna"},
		placeholder:      "Nenhuma lacuna específica identificada",
	}

	listItemRe      = regexp.MustCompile(`(?m)^\s*(?:[-•*]|\d+[.)])\s+(.+)$`)
	scorePercentRe  = regexp.MustCompile(`(?i)(?:compatibilidade|pontua[çc][ãa]o|score|fit)[^\d\n%]{0,30}(\d{1,3})\s*%`)
	scoreLabelRe    = regexp.MustCompile(`(?i)(alta|m[ée]dia|baixa)\s+compatibilidade`)
	scoreLabelInvRe = regexp.MustCompile(`(?i)compatibilidade\s+(alta|m[ée]dia|baixa)`)
)

// Parse never fails: fields that cannot be located come back as fixed
// placeholder strings.
func (p *StructuredResultParser) Parse(text string) models.JobFitAnalysisResult {
	score, matchRate := p.extractScore(text)

	return models.JobFitAnalysisResult{
		CompatibilityScore:  score,
		MatchRate:           matchRate,
		KeySkills:           p.extractField(text, skillsSpec),
		RelevantExperiences: p.extractField(text, experiencesSpec),
		IdentifiedGaps:      p.extractField(text, gapsSpec),
	}
}

func (p *StructuredResultParser) extractField(text string, spec fieldSpec) []string {
	var items []string

	if section := p.findSection(text, spec.sectionHeaders); section != "" {
		items = extractListItems(section)
		if len(items) == 0 {
			items = splitFragments(section)
		}
	}

	if len(items) == 0 {
		items = keywordSentences(text, spec.sentenceKeywords)
	}

	items = dedupeAndCap(items, maxListItems)
	if len(items) == 0 {
		return []string{spec.placeholder}
	}
	return items
}

// findSection locates a labeled section by header synonym and returns its
// body: the rest of the header line plus following lines until the next
// section header.
func (p *StructuredResultParser) findSection(text string, headers []string) string {
	lines := strings.Split(text, "\n")

	start := -1
	var body []string
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, header := range headers {
			if strings.Contains(lower, header) {
				start = i
				if idx := strings.Index(line, ":"); idx >= 0 && idx < len(line)-1 {
					body = append(body, line[idx+1:])
				}
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return ""
	}

	for _, line := range lines[start+1:] {
		if looksLikeSectionHeader(line) {
			break
		}
		body = append(body, line)
	}

	return strings.TrimSpace(strings.Join(body, "\n"))
}

// looksLikeSectionHeader flags short "Title:" style lines and any line
// carrying another known field label.
func looksLikeSectionHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasSuffix(trimmed, ":") && len(trimmed) < 60 && !strings.HasPrefix(trimmed, "-") {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, spec := range []fieldSpec{skillsSpec, experiencesSpec, gapsSpec} {
		for _, header := range spec.sectionHeaders {
			if strings.HasPrefix(lower, header) {
				return true
			}
		}
	}
	return false
}

func extractListItems(section string) []string {
	matches := listItemRe.FindAllStringSubmatch(section, -1)

	var items []string
	for _, match := range matches {
		item := strings.TrimSpace(match[1])
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// splitFragments breaks a section on comma and sentence boundaries,
// discarding fragments shorter than 4 characters.
func splitFragments(section string) []string {
	fragments := strings.FieldsFunc(section, func(r rune) bool {
		return r == ',' || r == '.' || r == ';' || r == '!' || r == '?' || r == '\n'
	})

	var items []string
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if len([]rune(fragment)) >= 4 {
			items = append(items, fragment)
		}
	}
	return items
}

// keywordSentences returns sentences mentioning any of the field keywords,
// in discovery order.
func keywordSentences(text string, keywords []string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})

	var items []string
	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len([]rune(sentence)) < 4 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				items = append(items, sentence)
				break
			}
		}
		if len(items) >= maxListItems {
			break
		}
	}
	return items
}

func dedupeAndCap(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// extractScore looks for a labeled percentage first, then a qualitative
// label near a compatibility keyword. The numeric rate is only known when a
// percentage was present.
func (p *StructuredResultParser) extractScore(text string) (string, float64) {
	if match := scorePercentRe.FindStringSubmatch(text); match != nil {
		if pct, err := strconv.Atoi(match[1]); err == nil && pct <= 100 {
			return fmt.Sprintf("Compatibilidade: %d%%", pct), float64(pct) / 100
		}
	}

	for _, re := range []*regexp.Regexp{scoreLabelRe, scoreLabelInvRe} {
		if match := re.FindStringSubmatch(text); match != nil {
			return canonicalScoreLabel(match[1]), 0
		}
	}

	return defaultScoreLabel, 0
}

func canonicalScoreLabel(word string) string {
	switch strings.ToLower(word) {
	case "alta":
		return "Alta Compatibilidade"
	case "média", "media", "médio", "medio":
		return "Média Compatibilidade"
	case "baixa":
		return "Baixa Compatibilidade"
	default:
		return defaultScoreLabel
	}
}
