package processor

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-agent-go/internal/types"
)

func TestReconcileExperienceRemovesEducationEntry(t *testing.T) {
	experience := []types.Experience{
		{Title: "Software Engineer", Company: "Acme Corp", StartDate: "2015-06", EndDate: "2020-01", Description: "Built billing systems."},
		{Title: "M.Tech Student", Company: "IIT Bombay", StartDate: "1988", EndDate: "1992", Description: "Masters coursework."},
	}
	education := []types.Education{
		{Degree: "M.Tech", Institution: "IIT Bombay", Year: "1990"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	require.Len(t, filtered, 1)
	assert.Equal(t, "Acme Corp", filtered[0].Company)
}

func TestReconcileExperienceKeepsRealJobs(t *testing.T) {
	// 公司名含education关键词但没有任何教育条目匹配时保留
	experience := []types.Experience{
		{Title: "Trainer", Company: "University Press Ltd", StartDate: "2010", EndDate: "2015", Description: "Corporate training delivery at a university publisher."},
	}
	education := []types.Education{
		{Degree: "BSc Physics", Institution: "MIT", Year: "2005"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Len(t, filtered, 1)
}

func TestReconcileExperienceKeywordGate(t *testing.T) {
	// 标题和描述都没有教育关键词时直接跳过，即使机构名相同
	experience := []types.Experience{
		{Title: "Research Staff", Company: "IIT Bombay", StartDate: "1990", EndDate: "1995", Description: "Full time research position."},
	}
	education := []types.Education{
		{Degree: "M.Tech", Institution: "IIT Bombay", Year: "1990"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Len(t, filtered, 1)
}

func TestReconcileExperienceNoDatesInstitutionMatch(t *testing.T) {
	// 经历没有任何日期时，机构命中即可移除
	experience := []types.Experience{
		{Title: "Student", Company: "State University", Description: "Bachelor degree coursework."},
	}
	education := []types.Education{
		{Degree: "B.Sc", Institution: "State University", Year: "2012"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Empty(t, filtered)
}

func TestReconcileExperienceYearOutsideInterval(t *testing.T) {
	// 教育年份落在经历区间之外时不移除
	experience := []types.Experience{
		{Title: "Lecturer", Company: "State University", StartDate: "2015", EndDate: "2018", Description: "Taught degree courses."},
	}
	education := []types.Education{
		{Degree: "Ph.D", Institution: "State University", Year: "2010"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Len(t, filtered, 1)
}

func TestReconcileExperienceSingleDateEquality(t *testing.T) {
	experience := []types.Experience{
		{Title: "Diploma Student", Company: "Polytechnic Institute", StartDate: "2008", Description: "Diploma program."},
		{Title: "Diploma Student", Company: "Polytechnic Institute", StartDate: "2009", Description: "Diploma program."},
	}
	education := []types.Education{
		{Degree: "Diploma", Institution: "Polytechnic Institute", Year: "2008"},
	}

	// 只有开始年份等于教育年份的那条被移除
	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	require.Len(t, filtered, 1)
	assert.Equal(t, "2009", filtered[0].StartDate)
}

func TestReconcileExperiencePresentEndDate(t *testing.T) {
	// "Present"按当前年份参与区间判断
	experience := []types.Experience{
		{Title: "Ph.D Candidate", Company: "State University", StartDate: "2020", EndDate: "Present", Description: "Doctoral research."},
	}
	education := []types.Education{
		{Degree: "Ph.D", Institution: "State University", Year: "2023"},
	}

	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Empty(t, filtered)
}

func TestReconcileExperienceEmptyInputs(t *testing.T) {
	assert.Empty(t, ReconcileExperience(nil, nil, nil, zerolog.Nop()))

	experience := []types.Experience{{Title: "Engineer", Company: "Acme"}}
	filtered := ReconcileExperience(experience, nil, nil, zerolog.Nop())
	assert.Len(t, filtered, 1)
}

func TestReconcileExperienceCustomKeywords(t *testing.T) {
	experience := []types.Experience{
		{Title: "Ausbildung zum Fachinformatiker", Company: "Berufsschule Mitte", Description: "Vocational program."},
	}
	education := []types.Education{
		{Degree: "Fachinformatiker", Institution: "Berufsschule Mitte", Year: "2016"},
	}

	// 默认关键词不含德语词，自定义后才会命中
	filtered := ReconcileExperience(experience, education, nil, zerolog.Nop())
	assert.Len(t, filtered, 1)

	filtered = ReconcileExperience(experience, education, []string{"ausbildung"}, zerolog.Nop())
	assert.Empty(t, filtered)
}
