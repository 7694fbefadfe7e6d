package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hkmu/coursehub/internal/pkg/logger"
)

type seedCourse struct {
	Code          string
	Name          string
	Program       string
	Credits       int
	Description   string
	Prerequisites []string
	Instructors   []string
}

// defaultCourses is the starter catalogue inserted on first boot so a fresh
// install is not an empty site.
var defaultCourses = []seedCourse{
	{
		Code:        "COMP3810SEF",
		Name:        "Server-side Technologies And Cloud Computing",
		Program:     "Computer Science",
		Credits:     3,
		Description: "This course focuses on developing students capabilities in writing programs that run on computer networks and leverage modern, scalable infrastructure.",
		Instructors: []string{"Dr. Yishu Li"},
	},
	{
		Code:        "COMP3500SEF",
		Name:        "Software Engineering",
		Program:     "Computer Science",
		Credits:     3,
		Description: "This course aims to introduce the concepts and applications of software engineering, explain their potential impacts on software productivity, quality assurance, cost and time to market during different software life cycles.",
		Instructors: []string{"Dr. Ndudi Ezeamuzie"},
	},
	{
		Code:        "COMP3120SEF",
		Name:        "Java Application Development",
		Program:     "Computer Science",
		Credits:     3,
		Description: "This course aims to enable students to create maintainable software in Java to meet a great variety of computing requirements.",
		Instructors: []string{"Dr. TSE Ka Wing"},
	},
	{
		Code:        "COMP3200SEF",
		Name:        "Database Management",
		Program:     "Computer Science",
		Credits:     3,
		Description: "This course describe essential principles and concepts of database management systems, perform data manipulation and extraction tasks effectively using SQL and Utilize the relational model to solve data modelling problems.",
		Instructors: []string{"Dr. Wyman Wang"},
	},
}

// Courses inserts the default catalogue, skipping codes that already exist.
func Courses(ctx context.Context, pool *pgxpool.Pool) error {
	var inserted int
	for _, course := range defaultCourses {
		if course.Prerequisites == nil {
			course.Prerequisites = []string{}
		}
		tag, err := pool.Exec(ctx, `
			INSERT INTO courses (code, name, program, credits, description, prerequisites, instructors)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (code) DO NOTHING`,
			course.Code, course.Name, course.Program, course.Credits,
			course.Description, course.Prerequisites, course.Instructors)
		if err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.Code, err)
		}
		inserted += int(tag.RowsAffected())
	}

	if inserted > 0 {
		logger.Info().Int("courses", inserted).Msg("Seeded default course catalogue")
	}
	return nil
}
