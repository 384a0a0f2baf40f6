package processor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/types"
)

func TestPruneRecordDropsEmptyFields(t *testing.T) {
	record := &types.ResumeRecord{
		Name:   "N/A",
		Skills: []string{},
		ContactInfo: &types.ContactInfo{
			Email:        "  ",
			PhoneNumbers: []string{},
			URLs:         []string{},
		},
		Experience:     []types.Experience{},
		Education:      []types.Education{},
		Projects:       []types.Project{},
		Certifications: []types.Certification{},
		Languages:      []types.LanguageSkill{},
	}

	PruneRecord(record)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var keys map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &keys))
	// 占位姓名和空列表序列化后键都不出现
	assert.Empty(t, keys)
}

func TestPruneRecordKeepsRealValues(t *testing.T) {
	record := &types.ResumeRecord{
		Name:   " Jane Smith ",
		Skills: []string{"Go"},
		ContactInfo: &types.ContactInfo{
			Email:        "jane@acme.com",
			PhoneNumbers: []string{},
		},
		Education: []types.Education{{Degree: "BSc", Institution: "MIT", Year: "2010"}},
	}

	PruneRecord(record)

	assert.Equal(t, "Jane Smith", record.Name)
	assert.Equal(t, []string{"Go"}, record.Skills)
	require.NotNil(t, record.ContactInfo)
	assert.Equal(t, "jane@acme.com", record.ContactInfo.Email)
	assert.Nil(t, record.ContactInfo.PhoneNumbers)
	assert.Len(t, record.Education, 1)
	assert.Nil(t, record.Experience)
}

func TestPruneRecordContactOnlyPhones(t *testing.T) {
	record := &types.ResumeRecord{
		ContactInfo: &types.ContactInfo{PhoneNumbers: []string{"+911234567890"}},
	}
	PruneRecord(record)
	require.NotNil(t, record.ContactInfo)
	assert.Len(t, record.ContactInfo.PhoneNumbers, 1)
}

func TestPruneRecordNil(t *testing.T) {
	assert.NotPanics(t, func() { PruneRecord(nil) })
}
