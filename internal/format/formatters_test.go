// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio-tui/internal/model"
)

// =============================================================================
// ABOUT
// =============================================================================

func TestAbout(t *testing.T) {
	v := model.MustParse(`{
		"name": "Saatvik",
		"headline": "Engineer",
		"about": "I build things.",
		"contactDetails": {"email": "a@b.c", "phone": "123"},
		"links": {"github": "gh"}
	}`)
	want := []string{
		"ABOUT",
		"-----",
		"",
		"Name: Saatvik",
		"Role: Engineer",
		"",
		"I build things.",
		"",
		"Contact:",
		"  • email: a@b.c",
		"  • phone: 123",
		"",
		"Links:",
		"  • github: gh",
	}
	assert.Equal(t, want, About(v))
}

func TestAbout_OptionalSections(t *testing.T) {
	v := model.MustParse(`{"headline": "Engineer", "links": ["x", "y"], "contactDetails": "n/a"}`)
	want := []string{
		"ABOUT",
		"-----",
		"",
		"Role: Engineer",
		"",
		"Contact:",
		"",
		"Links:",
		"  • 0: x",
		"  • 1: y",
	}
	assert.Equal(t, want, About(v))
}

func TestAbout_NotAnObject(t *testing.T) {
	for _, v := range []model.Value{model.Null(), model.Array(), model.String("x")} {
		assert.Equal(t, []string{"ABOUT", "-----", "", "No about"}, About(v))
	}
}

// =============================================================================
// EDUCATION
// =============================================================================

func TestEducation(t *testing.T) {
	v := model.MustParse(`[{
		"instituteName": "MIT",
		"degree": "BS",
		"fieldOfStudy": "CS",
		"startDate": "2018-01-01",
		"endDate": "2022-01-01",
		"grade": "A",
		"subjects": "Algorithms; Systems"
	}]`)
	want := []string{
		"EDUCATION",
		"---------",
		"",
		"1. MIT",
		"   Degree : BS",
		"   Field  : CS",
		"   Duration: 2018 - 2022",
		"   Grade  : A",
		"   Subjects:",
		"     • Algorithms",
		"     • Systems",
	}
	assert.Equal(t, want, Education(v))
}

func TestEducation_MissingFields(t *testing.T) {
	v := model.MustParse(`[{}, {"instituteName": "Uni", "endDate": 1577836800000, "subjects": []}]`)
	want := []string{
		"EDUCATION",
		"---------",
		"",
		"1. N/A",
		"   Degree : N/A",
		"   Field  : N/A",
		"   Duration: N/A - N/A",
		"",
		"2. Uni",
		"   Degree : N/A",
		"   Field  : N/A",
		"   Duration: N/A - 2020",
	}
	assert.Equal(t, want, Education(v))
}

func TestEducation_Empty(t *testing.T) {
	want := []string{"EDUCATION", "---------", "", "No education"}
	assert.Equal(t, want, Education(model.Array()))
	assert.Equal(t, want, Education(model.Null()))
	assert.Equal(t, want, Education(model.MustParse(`{"instituteName": "MIT"}`)))
}

// =============================================================================
// SKILLS
// =============================================================================

func TestSkills_GroupsInFirstSeenOrder(t *testing.T) {
	v := model.MustParse(`[
		{"name": "Go", "category": {"name": "Backend"}, "proficiency": "Expert"},
		{"name": "React", "category": "Frontend"},
		{"name": "SQL", "category": {"name": "Backend"}, "proficiency": {"name": "Advanced"}},
		{"category": null}
	]`)
	want := []string{
		"SKILLS",
		"------",
		"",
		"Backend:",
		"  • Go (Expert)",
		"  • SQL (Advanced)",
		"",
		"Frontend:",
		"  • React",
		"",
		"Other:",
		"  • Unnamed",
	}
	assert.Equal(t, want, Skills(v))
}

func TestSkills_NumericCategoryKeepsPosition(t *testing.T) {
	v := model.MustParse(`[{"name": "a", "category": "Tools"}, {"name": "b", "category": 2024}]`)
	got := Skills(v)
	require.Len(t, got, 8)
	assert.Equal(t, "Tools:", got[3])
	assert.Equal(t, "2024:", got[6])
}

func TestSkills_Empty(t *testing.T) {
	want := []string{"SKILLS", "------", "", "No skills"}
	assert.Equal(t, want, Skills(model.Array()))
	assert.Equal(t, want, Skills(model.String("Go")))
}

// =============================================================================
// PROJECTS
// =============================================================================

func TestProjects(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("word ", 20))
	v := model.Array(model.Object(
		model.Field("title", model.String("termfolio")),
		model.Field("role", model.String("Author")),
		model.Field("shortDescription", model.String("A terminal portfolio.")),
		model.Field("detailedDescription", model.String("Line one.\n\nLine two.")),
		model.Field("techStack", model.Array(model.String("Go"), model.String("SQLite"))),
		model.Field("highlights", model.Array(model.String("Fast"), model.String(long))),
		model.Field("gitHubLink", model.String("https://github.com/x/y")),
	))
	want := []string{
		"PROJECTS",
		"--------",
		"",
		"1. termfolio",
		"   Role       : Author",
		"   Summary    :",
		"     A terminal portfolio.",
		"   Description:",
		"     Line one.",
		"     ",
		"     Line two.",
		"   Tech Stack:",
		"     • Go",
		"     • SQLite",
		"   Highlights:",
		"     • Fast",
		"     • " + strings.TrimSpace(strings.Repeat("word ", 15)),
		"       " + strings.TrimSpace(strings.Repeat("word ", 5)),
		"   GitHub     : https://github.com/x/y",
	}
	assert.Equal(t, want, Projects(v))
}

func TestProjects_Fallbacks(t *testing.T) {
	v := model.MustParse(`[
		{"name": "Named", "description": "Short.", "gitLink": "g1"},
		{"git": "g2", "highlights": "one; two"},
		{"title": null, "highlights": "only one"}
	]`)
	want := []string{
		"PROJECTS",
		"--------",
		"",
		"1. Named",
		"   Summary    :",
		"     Short.",
		"   GitHub     : g1",
		"",
		"2. Project 2",
		"   Highlights:",
		"     • one",
		"     • two",
		"   GitHub     : g2",
		"",
		"3. Project 3",
		"   Highlights  :",
		"     • only one",
	}
	assert.Equal(t, want, Projects(v))
}

func TestProjects_HighlightsHeading(t *testing.T) {
	head := []string{"PROJECTS", "--------", "", "1. T"}
	tests := []struct {
		name       string
		highlights string
		want       []string
	}{
		{"absent", `null`, head},
		{"empty string", `""`, head},
		{"empty array keeps heading", `[]`, append(append([]string{}, head...), "   Highlights:")},
		{"separators only keep heading", `";;"`, append(append([]string{}, head...), "   Highlights:")},
		{"single part", `"only one"`, append(append([]string{}, head...), "   Highlights  :", "     • only one")},
		{"number is one part", `7`, append(append([]string{}, head...), "   Highlights  :", "     • 7")},
		{"blank array item kept", `["a", ""]`, append(append([]string{}, head...), "   Highlights:", "     • a", "     • ")},
		{"single array item", `["a"]`, append(append([]string{}, head...), "   Highlights:", "     • a")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := model.MustParse(`[{"title": "T", "techStack": "", "highlights": ` + tc.highlights + `}]`)
			assert.Equal(t, tc.want, Projects(v))
		})
	}
}

func TestProjects_Empty(t *testing.T) {
	want := []string{"PROJECTS", "--------", "", "No projects"}
	assert.Equal(t, want, Projects(model.Array()))
	assert.Equal(t, want, Projects(model.Null()))
}

// =============================================================================
// EXPERIENCE
// =============================================================================

func TestExperience(t *testing.T) {
	v := model.MustParse(`[
		{
			"company": "Acme",
			"role": "Engineer",
			"duration": "2020 - 2022",
			"responsibilities": ["Did X", "Did Y"],
			"achievements": "Won A;Won B"
		},
		{}
	]`)
	want := []string{
		"EXPERIENCE",
		"----------",
		"",
		"1. Acme",
		"   Role           : Engineer",
		"   Duration       : 2020 - 2022",
		"   Responsibilities:",
		"     • Did X",
		"     • Did Y",
		"   Achievements:",
		"     • Won A",
		"     • Won B",
		"",
		"2. Unknown Company",
		"   Duration       : N/A",
	}
	assert.Equal(t, want, Experience(v))
}

func TestExperience_DualFormEquivalence(t *testing.T) {
	a := Experience(model.MustParse(`[{"company": "C", "responsibilities": ["Did X", "Did Y"]}]`))
	b := Experience(model.MustParse(`[{"company": "C", "responsibilities": "Did X;Did Y"}]`))
	assert.Equal(t, a, b)
}

func TestExperience_ScalarListField(t *testing.T) {
	got := Experience(model.MustParse(`[{"company": "C", "responsibilities": 5, "achievements": false}]`))
	assert.Equal(t, []string{
		"EXPERIENCE", "----------", "",
		"1. C",
		"   Duration       : N/A",
		"   Responsibilities:",
		"     • 5",
	}, got)
}

func TestExperience_Empty(t *testing.T) {
	want := []string{"EXPERIENCE", "----------", "", "No experience"}
	assert.Equal(t, want, Experience(model.Array()))
	assert.Equal(t, want, Experience(model.Number(1)))
}

// =============================================================================
// DISPATCH
// =============================================================================

func TestByCommand(t *testing.T) {
	v := model.MustParse(`[{"name": "Go", "category": "Lang"}]`)

	assert.Equal(t, Skills(v), ByCommand("skills", v))
	assert.Equal(t, Projects(v), ByCommand("projects", v))
	assert.Equal(t, Generic(v), ByCommand("unknown", v))
	assert.Equal(t, []string{"No data"}, ByCommand("help", model.Null()))
}

func TestFormatters_BannerUnderlineMatchesTitle(t *testing.T) {
	inputs := []model.Value{
		model.Null(),
		model.Array(),
		model.MustParse(`[{"a": 1}]`),
		model.MustParse(`{"a": 1}`),
	}
	for name, f := range formatters {
		for _, in := range inputs {
			lines := f(in)
			require.GreaterOrEqual(t, len(lines), 2, name)
			assert.Equal(t, strings.ToUpper(name), lines[0])
			assert.Equal(t, strings.Repeat("-", len(lines[0])), lines[1])
		}
	}
}
