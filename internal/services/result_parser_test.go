package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredFeedback = `Pontuação de compatibilidade: 85%

Habilidades:
- Go
- PostgreSQL
- Docker

Experiências relevantes:
- Liderou migração de sistemas para a nuvem
- Atuou como desenvolvedora backend por cinco anos

Lacunas:
- Falta experiência com Kubernetes
`

func TestResultParser_StructuredFeedback(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse(structuredFeedback)

	assert.Equal(t, "Compatibilidade: 85%", result.CompatibilityScore)
	assert.InDelta(t, 0.85, result.MatchRate, 1e-9)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, result.KeySkills)
	assert.Equal(t, []string{
		"Liderou migração de sistemas para a nuvem",
		"Atuou como desenvolvedora backend por cinco anos",
	}, result.RelevantExperiences)
	assert.Equal(t, []string{"Falta experiência com Kubernetes"}, result.IdentifiedGaps)
}

func TestResultParser_CapsListsAtFive(t *testing.T) {
	parser := NewStructuredResultParser()
	feedback := `Habilidades:
- um
- dois
- tres
- quatro
- cinco
- seis
- sete
`

	result := parser.Parse(feedback)

	require.Len(t, result.KeySkills, 5)
	assert.Equal(t, []string{"um", "dois", "tres", "quatro", "cinco"}, result.KeySkills)
}

func TestResultParser_DeduplicatesItems(t *testing.T) {
	parser := NewStructuredResultParser()
	feedback := `Habilidades:
- Python
- Python
- Django
`

	result := parser.Parse(feedback)

	assert.Equal(t, []string{"Python", "Django"}, result.KeySkills)
}

func TestResultParser_QualitativeScoreLabel(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse("O perfil apresenta alta compatibilidade com a vaga em questão, considerando o histórico apresentado.")

	assert.Equal(t, "Alta Compatibilidade", result.CompatibilityScore)
	assert.Zero(t, result.MatchRate)
}

func TestResultParser_InvertedScoreLabel(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse("Resultado: compatibilidade média entre o perfil e a posição.")

	assert.Equal(t, "Média Compatibilidade", result.CompatibilityScore)
}

func TestResultParser_IgnoresOutOfRangePercentage(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse("score: 250% de alguma coisa sem sentido")

	assert.Equal(t, defaultScoreLabel, result.CompatibilityScore)
	assert.Zero(t, result.MatchRate)
}

func TestResultParser_KeywordSentencesWhenNoSections(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse("O candidato atuou em bancos de investimento por uma década. Nada mais consta.")

	assert.Contains(t, result.RelevantExperiences, "O candidato atuou em bancos de investimento por uma década")
}

func TestResultParser_PlaceholdersWhenNothingFound(t *testing.T) {
	parser := NewStructuredResultParser()

	result := parser.Parse("ok")

	assert.Equal(t, defaultScoreLabel, result.CompatibilityScore)
	assert.Equal(t, []string{skillsSpec.placeholder}, result.KeySkills)
	assert.Equal(t, []string{experiencesSpec.placeholder}, result.RelevantExperiences)
	assert.Equal(t, []string{gapsSpec.placeholder}, result.IdentifiedGaps)
}

func TestResultParser_NeverReturnsEmptyFields(t *testing.T) {
	parser := NewStructuredResultParser()

	for _, text := range []string{"", "a", "\n\n\n", "12345 67890"} {
		result := parser.Parse(text)
		assert.NotEmpty(t, result.CompatibilityScore)
		assert.NotEmpty(t, result.KeySkills)
		assert.NotEmpty(t, result.RelevantExperiences)
		assert.NotEmpty(t, result.IdentifiedGaps)
	}
}
