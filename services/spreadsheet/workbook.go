// Package spreadsheet reads and writes the registries as xlsx workbooks.
package spreadsheet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/langcenter/core/assignment"
	"github.com/trezcool/langcenter/core/attendance"
	"github.com/trezcool/langcenter/core/certificate"
	"github.com/trezcool/langcenter/core/class"
	"github.com/trezcool/langcenter/core/course"
	"github.com/trezcool/langcenter/core/finance"
	"github.com/trezcool/langcenter/core/material"
	"github.com/trezcool/langcenter/core/schedule"
	"github.com/trezcool/langcenter/core/user"
)

const defaultSheet = "Sheet1"

// Sheet is one worksheet: a bold header row followed by the data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]interface{}
}

// Write writes the sheets as one workbook to w, in order.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return errors.New("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sh.Name); err != nil {
				return errors.Wrapf(err, "naming sheet %q", sh.Name)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return errors.Wrapf(err, "adding sheet %q", sh.Name)
		}

		header := make([]interface{}, len(sh.Header))
		for j, h := range sh.Header {
			header[j] = h
		}
		if err := f.SetSheetRow(sh.Name, "A1", &header); err != nil {
			return errors.Wrapf(err, "writing %q header", sh.Name)
		}
		if err := f.SetRowStyle(sh.Name, 1, 1, bold); err != nil {
			return errors.Wrapf(err, "styling %q header", sh.Name)
		}

		for j, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, j+2)
			if err != nil {
				return err
			}
			row := row
			if err := f.SetSheetRow(sh.Name, cell, &row); err != nil {
				return errors.Wrapf(err, "writing %q row %d", sh.Name, j+2)
			}
		}
	}
	f.SetActiveSheet(0)

	return errors.Wrap(f.Write(w), "writing workbook")
}

// Users sheet. Password hashes are never exported.
func UserSheet(users []user.User) Sheet {
	sh := Sheet{Name: "Users", Header: []string{"ID", "Name", "Role", "Email", "Phone", "Status"}}
	for _, u := range users {
		sh.Rows = append(sh.Rows, []interface{}{u.ID, u.Name, u.Role, u.Email, u.Phone, u.Status})
	}
	return sh
}

func CourseSheet(courses []course.Course) Sheet {
	sh := Sheet{Name: "Courses", Header: []string{"ID", "Name", "Level", "Modules", "Price", "Status"}}
	for _, c := range courses {
		sh.Rows = append(sh.Rows, []interface{}{c.ID, c.Name, c.Level, c.ModuleCount, c.Price, c.Status})
	}
	return sh
}

func ClassSheet(classes []class.Detail) Sheet {
	sh := Sheet{
		Name:   "Classes",
		Header: []string{"ID", "Name", "Course", "Teacher", "Students", "Status", "Schedule", "Start", "End"},
	}
	for _, c := range classes {
		sh.Rows = append(sh.Rows, []interface{}{
			c.ID, c.Name, c.Course, c.Teacher, c.Students, c.Status, c.Schedule, c.StartDate, c.EndDate,
		})
	}
	return sh
}

func FinanceSheet(records []finance.Record) Sheet {
	sh := Sheet{Name: "Finance", Header: []string{"ID", "Name", "Student", "Type", "Amount", "Status", "Due"}}
	for _, r := range records {
		sh.Rows = append(sh.Rows, []interface{}{r.ID, r.Name, r.StudentID, r.Type, r.Amount, r.Status, r.DueDate})
	}
	return sh
}

func ScheduleSheet(events []schedule.Detail) Sheet {
	sh := Sheet{Name: "Schedule", Header: []string{"ID", "Date", "Start", "End", "Class", "Teacher", "Room", "Status"}}
	for _, e := range events {
		sh.Rows = append(sh.Rows, []interface{}{e.ID, e.Date, e.StartTime, e.EndTime, e.Class, e.Teacher, e.Room, e.Status})
	}
	return sh
}

func CertificateSheet(certs []certificate.Detail) Sheet {
	sh := Sheet{Name: "Certificates", Header: []string{"ID", "Student", "Course", "Grade", "Status", "Issued", "Code"}}
	for _, c := range certs {
		sh.Rows = append(sh.Rows, []interface{}{c.ID, c.StudentName, c.Course, c.Grade, c.Status, c.IssueDate, c.Code})
	}
	return sh
}

// AssignmentSheet lists the assignments with their results, one row per assignment.
func AssignmentSheet(asgs []assignment.Detail) Sheet {
	sh := Sheet{
		Name:   "Assignments",
		Header: []string{"ID", "Title", "Class", "Due", "Max", "Pass", "Status", "Graded", "Passed", "Average"},
	}
	for _, a := range asgs {
		sh.Rows = append(sh.Rows, []interface{}{
			a.ID, a.Title, a.Class, a.DueDate, a.MaxScore, a.PassScore, a.Status, a.Results.Graded, a.Results.Passed, a.Results.Average,
		})
	}
	return sh
}

func AttendanceSheet(recs []attendance.Detail) Sheet {
	sh := Sheet{Name: "Attendance", Header: []string{"ID", "Date", "Class", "Student ID", "Student", "Status"}}
	for _, r := range recs {
		sh.Rows = append(sh.Rows, []interface{}{r.ID, r.Date, r.Class, r.StudentID, r.Student, r.Status})
	}
	return sh
}

func MaterialSheet(mats []material.Detail) Sheet {
	sh := Sheet{Name: "Materials", Header: []string{"ID", "Title", "Course", "Type", "Size", "Uploaded by", "Uploaded"}}
	for _, m := range mats {
		sh.Rows = append(sh.Rows, []interface{}{m.ID, m.Title, m.Course, m.Type, m.Size, m.Teacher, m.UploadedDate})
	}
	return sh
}
