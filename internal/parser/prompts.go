package parser

// 各字段的提示词模板，%s处填入上下文文本
// 提示词刻意保留worked example，引导小模型输出稳定的JSON形状

const namePrompt = `Based on the following resume text, extract ONLY the full name of the candidate.
Return only the name string, without any additional text, labels, or punctuation.
If the name is not clearly identifiable, return "N/A".

Context:
%s
`

var skillsPrompt = `From the provided resume text, identify and list all distinct technical skills, programming languages, software, tools, and methodologies. Focus on the candidate's actual technical abilities and proficiency, typically found in a 'Skills' or 'Technical Expertise' section, or explicitly mentioned in job descriptions.
Return the skills as a JSON array of strings. Each string should be a single skill.
If no relevant skills are found, return an empty JSON array: [].

Example JSON format (always an array of strings):
` + "```json" + `
[
    "Python",
    "Data Analysis",
    "SQL",
    "Machine Learning",
    "React",
    "Cloud Computing (AWS)"
]
` + "```" + `

Resume Context:
%s
`

var experiencePrompt = `From the provided resume text, extract ONLY formal work experience entries.
Focus exclusively on instances where the candidate held a specific 'title' at a 'company' (employer) during a defined period ('start_date' and 'end_date').
**DO NOT include any entries that describe projects, assignments, freelancing, or client-based work. Focus strictly on traditional employment history.**

For each formal employment entry, extract the following fields and adhere strictly to the date logic and formatting:

- 'title': The job title (e.g., "Senior Software Engineer").
- 'company': The name of the employer.
- 'start_date': The start date of the employment (YYYY-MM format, or YYYY if only year is available).
- 'end_date': The end date of the employment (YYYY-MM format, or YYYY if only year is available, or 'Present' if ongoing).
- 'description': A concise summary of responsibilities, achievements, and key duties.

Return ALL extracted formal employment entries as a JSON array of objects. If no formal employment entries are found, return an empty JSON array: [].

Example JSON format for multiple entries (focus on formal employment, and strict date formats):
` + "```json" + `
[
    {
        "title": "Principal Pavement Engineer",
        "company": "ADG Mobility Pvt. Ltd., India",
        "start_date": "2021-11",
        "end_date": "Present",
        "description": "Responsible for detailed engineering design of pavements, project management, and quality control."
    },
    {
        "title": "Lecturer",
        "company": "Eduardo Mondlane University",
        "start_date": "1987-01",
        "end_date": "1997-12",
        "description": "Taught various civil engineering subjects and supervised student projects."
    },
    {
        "title": "Head of Pavement Design",
        "company": "Infrastructure Solutions Inc.",
        "start_date": "2015-03",
        "end_date": "2021-10",
        "description": "Managed a team of engineers, oversaw pavement design projects from conceptualization to completion."
    }
]
` + "```" + `
Resume Context:
%s
`

var educationPrompt = `From the provided resume text, extract ALL education entries.
For each entry, extract the following:
- 'degree': The full degree obtained (e.g., "Master of Science in Computer Science").
- 'institution': The name of the university or institution.
- 'year': The year of completion (YYYY format).

Return ALL education entries as a JSON array of objects. If no education entries are found, return an empty JSON array: [].

Example JSON format:
` + "```json" + `
[
    {
        "degree": "Master of Technology (M. Tech.) in Transportation Systems Engineering",
        "institution": "Indian Institute of Technology (IIT), Bombay",
        "year": "1990"
    },
    {
        "degree": "Bachelor of Engineering (B.E.) (Civil) Hons",
        "institution": "Malviya National Institute of Technology (MNIT), Jaipur, Rajasthan, India",
        "year": "1987"
    }
]
` + "```" + `

Resume Context:
%s
`

var projectsPrompt = `From the following resume text, extract all relevant project entries. Each entry should include:
- project_name or Name of assignment (the name of the project)
- client_company (Optional) The name of the client company or organization for whom the project was done. If not explicitly mentioned, infer or return "N/A".
- role (your role in the project, if specified)(optional).
- description (a concise summary of the project and your contributions).
- technologies_used (a list of technologies/skills used in the project, if specified).

Return the projects as a JSON array of objects. If no projects are found, return an empty JSON array: [].

Example JSON format:
` + "```json" + `
[
    {
        "project_name": "E-commerce Recommendation System",
        "client_company": "Retail Innovations Inc.",
        "role": "Lead Developer",
        "description": "Developed a real-time recommendation engine using collaborative filtering; Improved user engagement by 15%%.",
        "technologies_used": ["Python", "TensorFlow", "Kafka", "PostgreSQL"]
    },
    {
        "project_name": "Personal Portfolio Website",
        "client_company": "Self-project",
        "role": "Full-stack Developer",
        "description": "Built and deployed a personal portfolio site showcasing projects and skills.",
        "technologies_used": ["React", "Node.js", "MongoDB", "AWS S3"]
    },
    {
        "project_name": "Road Construction Project in Mozambique",
        "client_company": "ADMINISTRACAO NACIONAL DE ESTRADAS, I.P., MOZAMBIQUE",
        "role": "Geotechnical/Materials Engineer",
        "description": "Preparation of Feasibility Study, Conceptual Design, Environmental and Social Impact Assessment, Resettlement Action Plan, Bidding Documents and Procurement Support for civil works under design and build methodology for roads N381, N380, and N762 in Cabo Delgado province, Mozambique.",
        "technologies_used": ["Design and Build Methodology", "Feasibility Study", "Environmental Impact Assessment"]
    }
]
` + "```" + `

Resume Context:
%s
`

var certificationsPrompt = `From the provided resume text, identify and extract ALL distinct certifications, professional licenses, and formal training programs and also if the resume has heading i.e Other Training.
For each entry, include:
- 'name': The full name of the certification or training.
- 'issuing_body': (Optional) The organization or institution that issued it. If not found, return "N/A".
- 'dates': (Optional) The date of completion or validity (e.g., "2022-05", "2023", "2024-Expiration"). If not found, return "N/A".

Return ALL certifications as a JSON array of objects. If no certifications are found, return an empty JSON array: [].

Example JSON format for multiple entries:
` + "```json" + `
[
    {
        "name": "Project Management Professional (PMP)",
        "issuing_body": "PMI",
        "dates": "2021-08"
    },
    {
        "name": "AWS Certified Solutions Architect - Associate",
        "issuing_body": "Amazon Web Services",
        "dates": "2023-12-Expiration"
    },
    {
        "name": "Sub - Urban Railway System, Training",
        "issuing_body": "Indian Railway Institute of Civil Engineering",
        "dates": "2005"
    }
]
` + "```" + `

Resume Context:
%s
`

var languagesPrompt = `From the provided resume text, identify and extract ALL distinct languages spoken by the candidate, along with their corresponding proficiency levels for speaking, reading, and writing.
If proficiency levels are not explicitly stated for a category (e.g., only "Fluent" overall), infer them as 'Fluent' for all categories. Use 'Native' or 'Mother tongue' for highest proficiency. If no level is given, use 'N/A'.
Return the languages as a JSON array of objects. If no languages are found, return an empty JSON array: [].

Example JSON format (always an array of objects):
` + "```json" + `
[
    {
        "language": "English",
        "speaking": "Fluent",
        "reading": "Excellent",
        "writing": "Excellent"
    },
    {
        "language": "Hindi",
        "speaking": "Native",
        "reading": "Mother tongue",
        "writing": "Mother tongue"
    },
    {
        "language": "Bengali",
        "speaking": "Mother tongue",
        "reading": "Mother tongue",
        "writing": "Mother tongue"
    },
    {
        "language": "Arabic",
        "speaking": "Beginner",
        "reading": "Beginner",
        "writing": "Beginner"
    }
]
` + "```" + `

Resume Context:
%s
`
