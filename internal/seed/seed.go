// Package seed holds the demo fixtures used when no persisted data is
// available. Every call returns freshly allocated values.
package seed

import (
	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/requirement"

	"github.com/google/uuid"
)

// ID derives a stable identifier for a fixture key such as "cv_1".
func ID(key string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("talent-match/seed/"+key))
}

func skills(names ...string) []cv.Skill {
	out := make([]cv.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, cv.Skill{Name: n})
	}
	return out
}

func years(v int) *int { return &v }

func CVs() []cv.CV {
	return []cv.CV{
		{
			ID:              ID("cv_1"),
			Fullname:        "Frontend Developer CV",
			TargetRole:      "Frontend Developer",
			Skills:          skills("React", "TypeScript", "Tailwind", "HTML", "CSS", "JavaScript"),
			ExperienceLevel: "Senior",
			Location:        cv.Location{City: "Hà Nội"},
		},
		{
			ID:              ID("cv_2"),
			Fullname:        "Marketing Profile",
			TargetRole:      "Marketing Manager",
			Skills:          skills("SEO", "Content Marketing", "Google Ads", "Social Media"),
			ExperienceLevel: "Mid-Level",
			Location:        cv.Location{City: "Hồ Chí Minh"},
		},
		{
			ID:              ID("cv_3"),
			Fullname:        "Fresher IT",
			TargetRole:      "Intern Developer",
			Skills:          skills("Java", "Basic HTML"),
			ExperienceLevel: "Junior",
			Location:        cv.Location{City: "Đà Nẵng"},
		},
	}
}

func Requirements() []requirement.Requirement {
	return []requirement.Requirement{
		{
			ID:              ID("req_1"),
			Title:           "Frontend React Developer",
			Skills:          []string{"React", "TypeScript", "Tailwind CSS", "Redux"},
			ExperienceLevel: "Senior",
			Location:        "Hà Nội",
			OpenPositions:   2,
			Criteria: []string{
				"React, TypeScript, Tailwind",
				"3+ năm kinh nghiệm",
				"Hà Nội hoặc Remote",
				"Lương $1500 - $2500",
				"Full-time",
			},
		},
		{
			ID:              ID("req_2"),
			Title:           "Marketing Executive",
			Skills:          []string{"Social Media", "Content Writing", "English", "SEO"},
			ExperienceLevel: "Junior",
			Location:        "Hồ Chí Minh",
			OpenPositions:   1,
			Criteria: []string{
				"Content Writing, SEO, Social",
				"1+ năm kinh nghiệm",
				"Hồ Chí Minh",
				"Lương 12 - 18 triệu",
				"Full-time",
			},
		},
		{
			ID:              ID("req_3"),
			Title:           "Backend Engineer",
			Skills:          []string{"Node.js", "MongoDB", "Docker", "AWS"},
			ExperienceLevel: "Mid-Level",
			Location:        "Remote",
			OpenPositions:   3,
			Criteria: []string{
				"Node.js, MongoDB, AWS",
				"2+ năm kinh nghiệm",
				"Remote",
				"Lương $2000+",
				"Contract / Full-time",
			},
		},
		{
			ID:              ID("req_4"),
			Title:           "UI/UX Designer",
			Skills:          []string{"Figma", "Adobe XD", "User Research"},
			ExperienceLevel: "Mid-Level",
			Location:        "Hà Nội",
			OpenPositions:   1,
			Criteria: []string{
				"Figma, Adobe Suite",
				"Portfolio bắt buộc",
				"Hà Nội",
				"Lương 15 - 25 triệu",
				"Full-time",
			},
		},
	}
}

// Candidates returns demo candidate profiles shaped as CVs.
func Candidates() []cv.CV {
	return []cv.CV{
		{
			ID:              ID("c_1"),
			Fullname:        "Nguyễn Văn A",
			Headline:        "Senior Frontend Developer",
			Location:        cv.Location{City: "Hà Nội"},
			Skills:          skills("React", "TypeScript", "Tailwind CSS", "Redux", "Next.js"),
			ExperienceLevel: "Senior",
			ExperienceYears: years(5),
			Availability:    "Immediate",
		},
		{
			ID:              ID("c_2"),
			Fullname:        "Trần Thị B",
			Headline:        "Marketing Specialist",
			Location:        cv.Location{City: "Hồ Chí Minh"},
			Skills:          skills("Social Media", "Content Writing", "SEO", "Canva"),
			ExperienceLevel: "Junior",
			ExperienceYears: years(2),
			Availability:    "2 weeks",
		},
		{
			ID:              ID("c_3"),
			Fullname:        "Le Van C",
			Headline:        "Full Stack Developer",
			Location:        cv.Location{City: "Đà Nẵng"},
			Skills:          skills("React", "Node.js", "MongoDB", "Express"),
			ExperienceLevel: "Mid-Level",
			ExperienceYears: years(3),
			Availability:    "1 month",
		},
		{
			ID:              ID("c_4"),
			Fullname:        "Pham D",
			Headline:        "Senior React Native Dev",
			Location:        cv.Location{City: "Remote"},
			Skills:          skills("React", "React Native", "JavaScript", "TypeScript"),
			ExperienceLevel: "Senior",
			ExperienceYears: years(6),
			Availability:    "Immediate",
		},
	}
}
