package readiness

// Static keyword dictionaries used by the relevance matcher. They are
// configuration data: construct an Engine with them instead of reading
// them ambiently.

func DefaultExperienceKeywords() Keywords {
	return Keywords{
		"Programming Languages":    {"python", "java", "javascript", "cpp", "c#", "go", "rust"},
		"Frameworks & Libraries":   {"react", "django", "flask", "spring", "node"},
		"Databases":                {"sql", "mongodb", "postgresql", "mysql", "redis", "elasticsearch"},
		"DevOps & Cloud":           {"aws", "gcp", "azure", "docker", "kubernetes", "ci/cd"},
		"Tools & Technologies":     {"git", "jira", "linux", "windows", "mac"},
		"Problem Solving":          {"debug", "troubleshoot", "solve", "optimize", "performance"},
		"Logical Thinking":         {"algorithm", "logic", "architecture", "design", "pattern"},
		"Learning Agility":         {"learn", "training", "certification", "course", "upskill"},
		"Analytical Thinking":      {"analyze", "analytics", "data", "metrics", "report"},
		"Research Ability":         {"research", "experiment", "innovation", "poc", "prototype"},
		"Communication":            {"present", "documentation", "communicate", "write", "speak"},
		"Teamwork & Collaboration": {"team", "collaborate", "mentor", "lead", "coordinate"},
		"Leadership":               {"lead", "manage", "direct", "oversee", "responsible"},
		"Adaptability":             {"adapt", "flexible", "change", "pivot", "agile"},
		"Reliability & Work Ethic": {"deliver", "reliable", "consistent", "deadline", "quality"},
	}
}

func DefaultProjectKeywords() Keywords {
	return Keywords{
		"Programming Languages":  {"python", "javascript", "java", "typescript", "kotlin"},
		"Frameworks & Libraries": {"react", "vue", "angular", "django", "fastapi"},
		"Databases":              {"postgresql", "mongodb", "mysql", "redis", "dynamodb"},
		"DevOps & Cloud":         {"docker", "kubernetes", "aws", "gcp", "terraform"},
		"Tools & Technologies":   {"git", "api", "rest", "graphql", "websocket"},
	}
}

func DefaultCertificationKeywords() Keywords {
	return Keywords{
		"Programming Languages":  {"python", "java", "javascript"},
		"Frameworks & Libraries": {"react", "django", "spring"},
		"Databases":              {"sql", "mongodb", "nosql"},
		"DevOps & Cloud":         {"aws", "gcp", "azure", "devops"},
		"Tools & Technologies":   {"linux", "kubernetes"},
	}
}
