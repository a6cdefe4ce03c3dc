package catalog

import "hirepulse/internal/types"

// Default returns the built-in sample catalog used when no catalog file
// is configured. Handy for demos and tests; production deployments
// should point the server at their own catalog file.
func Default() []types.Company {
	return []types.Company{
		{
			ID:             "comp_001",
			Name:           "TechCorp Inc",
			Industry:       "Technology",
			Size:           "100-500",
			Location:       "San Francisco, CA",
			RemoteFriendly: true,
			OpenPositions: []types.Position{
				{
					ID:                 "pos_001",
					Title:              "Senior Frontend Developer",
					Department:         "Engineering",
					Level:              "Senior",
					SkillsRequired:     []string{"React", "JavaScript", "TypeScript", "CSS"},
					ExperienceRequired: "4-6 years",
					SalaryRange:        types.SalaryRange{Min: 120000, Max: 160000},
					WorkType:           types.WorkTypeRemote,
					Description:        "Build amazing user interfaces with React and modern web technologies",
				},
				{
					ID:                 "pos_002",
					Title:              "Full Stack Engineer",
					Department:         "Engineering",
					Level:              "Mid",
					SkillsRequired:     []string{"Node.js", "React", "Python", "AWS"},
					ExperienceRequired: "2-4 years",
					SalaryRange:        types.SalaryRange{Min: 90000, Max: 130000},
					WorkType:           types.WorkTypeHybrid,
					Description:        "Full-stack development with modern technologies",
				},
			},
		},
		{
			ID:             "comp_002",
			Name:           "StartupXYZ",
			Industry:       "Fintech",
			Size:           "10-50",
			Location:       "New York, NY",
			RemoteFriendly: true,
			OpenPositions: []types.Position{
				{
					ID:                 "pos_003",
					Title:              "Backend Developer",
					Department:         "Engineering",
					Level:              "Mid",
					SkillsRequired:     []string{"Python", "Django", "PostgreSQL", "Docker"},
					ExperienceRequired: "3-5 years",
					SalaryRange:        types.SalaryRange{Min: 95000, Max: 125000},
					WorkType:           types.WorkTypeRemote,
					Description:        "Build scalable backend systems for fintech platform",
				},
			},
		},
		{
			ID:             "comp_003",
			Name:           "Enterprise Solutions Ltd",
			Industry:       "Enterprise Software",
			Size:           "500+",
			Location:       "Austin, TX",
			RemoteFriendly: false,
			OpenPositions: []types.Position{
				{
					ID:                 "pos_004",
					Title:              "DevOps Engineer",
					Department:         "Infrastructure",
					Level:              "Senior",
					SkillsRequired:     []string{"AWS", "Kubernetes", "Terraform", "Python"},
					ExperienceRequired: "5-8 years",
					SalaryRange:        types.SalaryRange{Min: 130000, Max: 180000},
					WorkType:           types.WorkTypeOnsite,
					Description:        "Manage cloud infrastructure and deployment pipelines",
				},
			},
		},
	}
}
