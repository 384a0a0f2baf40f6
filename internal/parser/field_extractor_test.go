package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/constants"
	"cv-agent-go/internal/types"
)

func newTestExtractor(m *mockChatModel) *LLMFieldExtractor {
	return NewLLMFieldExtractor(m, zerolog.Nop())
}

func TestExtractNameTrimsResponse(t *testing.T) {
	m := &mockChatModel{response: "  Jane Smith \n"}
	e := newTestExtractor(m)

	name := e.ExtractName(context.Background(), "Jane Smith\nSenior Engineer")
	assert.Equal(t, "Jane Smith", name)
	assert.Equal(t, 1, m.calls)
}

func TestExtractNameFailureReturnsPlaceholder(t *testing.T) {
	m := &mockChatModel{err: errors.New("connection refused")}
	e := newTestExtractor(m)

	assert.Equal(t, constants.NotAvailable, e.ExtractName(context.Background(), "some text"))

	m = &mockChatModel{response: "   "}
	e = newTestExtractor(m)
	assert.Equal(t, constants.NotAvailable, e.ExtractName(context.Background(), "some text"))
}

func TestCallLLMContextGoesToSystemMessage(t *testing.T) {
	m := &mockChatModel{response: "[]"}
	e := newTestExtractor(m)

	e.ExtractSkills(context.Background(), "CANDIDATE CONTEXT BLOCK")

	require.Len(t, m.lastMessages, 2)
	assert.Equal(t, schema.RoleType("system"), m.lastMessages[0].Role)
	assert.Contains(t, m.lastMessages[0].Content, "CANDIDATE CONTEXT BLOCK")
	assert.Equal(t, schema.RoleType("user"), m.lastMessages[1].Role)
}

func TestExtractSkills(t *testing.T) {
	m := &mockChatModel{response: "```json\n[\"Go\", \"SQL\", \"Docker\"]\n```"}
	e := newTestExtractor(m)

	skills, outcome := e.ExtractSkills(context.Background(), "skills section")
	assert.Equal(t, types.FieldOK, outcome)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, skills)
}

func TestExtractSkillsMixedEntriesSalvaged(t *testing.T) {
	// 数组里混入了数字，字符串条目仍应保留
	m := &mockChatModel{response: `["Go", 42, "SQL"]`}
	e := newTestExtractor(m)

	skills, outcome := e.ExtractSkills(context.Background(), "skills section")
	assert.Equal(t, types.FieldOK, outcome)
	assert.Equal(t, []string{"Go", "SQL"}, skills)
}

func TestExtractSkillsEmptyArray(t *testing.T) {
	m := &mockChatModel{response: "[]"}
	e := newTestExtractor(m)

	skills, outcome := e.ExtractSkills(context.Background(), "skills section")
	assert.Equal(t, types.FieldEmpty, outcome)
	assert.Nil(t, skills)
}

func TestExtractSkillsMalformed(t *testing.T) {
	m := &mockChatModel{response: "I could not find any structured data, sorry."}
	e := newTestExtractor(m)

	skills, outcome := e.ExtractSkills(context.Background(), "skills section")
	assert.Equal(t, types.FieldMalformed, outcome)
	assert.Nil(t, skills)
}

func TestExtractExperience(t *testing.T) {
	m := &mockChatModel{response: `Here you go:
[
  {"title": "Senior Engineer", "company": "Acme Corp", "start_date": "2018-03", "end_date": "Present", "description": "Led the billing team."},
  {"title": "Engineer", "company": "Beta Ltd", "start_date": "2015", "end_date": "2018", "description": ""}
]`}
	e := newTestExtractor(m)

	exp, outcome := e.ExtractExperience(context.Background(), "experience section")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, exp, 2)
	assert.Equal(t, "Senior Engineer", exp[0].Title)
	assert.Equal(t, "Acme Corp", exp[0].Company)
	assert.Equal(t, "Present", exp[0].EndDate)
	assert.Equal(t, "Beta Ltd", exp[1].Company)
}

func TestExtractExperienceSkipsNonObjectEntries(t *testing.T) {
	m := &mockChatModel{response: `[{"title": "Engineer", "company": "Acme"}, "stray string", {"title": "Lead", "company": "Beta"}]`}
	e := newTestExtractor(m)

	exp, outcome := e.ExtractExperience(context.Background(), "experience section")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, exp, 2)
	assert.Equal(t, "Acme", exp[0].Company)
	assert.Equal(t, "Beta", exp[1].Company)
}

func TestExtractEducation(t *testing.T) {
	m := &mockChatModel{response: `[{"degree": "B.Tech Computer Science", "institution": "IIT Bombay", "year": "2014"}]`}
	e := newTestExtractor(m)

	edu, outcome := e.ExtractEducation(context.Background(), "education section")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, edu, 1)
	assert.Equal(t, "IIT Bombay", edu[0].Institution)
	assert.Equal(t, "2014", edu[0].Year)
}

func TestExtractProjectsTechnologiesAsString(t *testing.T) {
	// technologies_used 偶尔被返回成逗号串而不是数组
	m := &mockChatModel{response: `[{"project_name": "Billing Revamp", "role": "Tech Lead", "technologies_used": "Go, Redis, Kafka"}]`}
	e := newTestExtractor(m)

	projects, outcome := e.ExtractProjects(context.Background(), "projects section")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, projects, 1)
	assert.Equal(t, "Billing Revamp", projects[0].ProjectName)
	assert.Equal(t, types.StringList{"Go", "Redis", "Kafka"}, projects[0].TechnologiesUsed)
}

func TestExtractCertifications(t *testing.T) {
	m := &mockChatModel{response: `[{"name": "AWS Solutions Architect", "issuing_body": "Amazon", "dates": "2021"}]`}
	e := newTestExtractor(m)

	certs, outcome := e.ExtractCertifications(context.Background(), "certifications section")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, certs, 1)
	assert.Equal(t, "AWS Solutions Architect", certs[0].Name)
}

func TestExtractLanguages(t *testing.T) {
	m := &mockChatModel{response: `[{"language": "English", "speaking": "Fluent", "reading": "Fluent", "writing": "Fluent"}]`}
	e := newTestExtractor(m)

	langs, outcome := e.ExtractLanguages(context.Background(), "full resume text")
	require.Equal(t, types.FieldOK, outcome)
	require.Len(t, langs, 1)
	assert.Equal(t, "English", langs[0].Language)
}

func TestExtractFieldLLMError(t *testing.T) {
	m := &mockChatModel{err: errors.New("model unavailable")}
	e := newTestExtractor(m)

	exp, outcome := e.ExtractExperience(context.Background(), "text")
	assert.Equal(t, types.FieldMalformed, outcome)
	assert.Nil(t, exp)
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "John Michael Doe", FallbackName("John Michael Doe\nSenior Engineer at Acme", 500))
	assert.Equal(t, "Jane Smith", FallbackName("Jane Smith\njane@smith.dev", 500))

	// 开头不是姓名形态时放弃
	assert.Empty(t, FallbackName("RESUME\nJohn Doe", 500))
	assert.Empty(t, FallbackName("john doe lowercase", 500))
	assert.Empty(t, FallbackName("", 500))

	// 截断窗口之外的内容不参与匹配
	assert.Empty(t, FallbackName("John Doe", 4))
}
