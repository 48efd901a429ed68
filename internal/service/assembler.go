package service

import (
	"github.com/noah-isme/sma-analytics-api/internal/analytics"
	"github.com/noah-isme/sma-analytics-api/internal/dto"
	"github.com/noah-isme/sma-analytics-api/pkg/stats"
)

// Rounding is applied here and nowhere upstream.

func assembleDailyAttendance(days []analytics.DailyAttendance) []dto.DailyAttendance {
	out := make([]dto.DailyAttendance, 0, len(days))
	for _, day := range days {
		out = append(out, dto.DailyAttendance{
			Date:                 day.Date.Format(dateLayout),
			TotalStudents:        day.Tally.Total,
			PresentCount:         day.Tally.Present,
			AttendancePercentage: stats.Round(day.Percentage, stats.PercentPrecision),
		})
	}
	return out
}

// assembleGradeStats returns the zero value, serialised as {}, when nothing was graded.
func assembleGradeStats(summary analytics.Summary) dto.GradeStats {
	if summary.Count == 0 {
		return dto.GradeStats{}
	}
	return dto.GradeStats{
		Average: stats.RoundPtr(summary.Mean, stats.AveragePrecision),
		Median:  stats.RoundPtr(summary.Median, stats.AveragePrecision),
		Highest: stats.RoundPtr(summary.Max, stats.AveragePrecision),
		Lowest:  stats.RoundPtr(summary.Min, stats.AveragePrecision),
		Count:   summary.Count,
	}
}

func assembleTeacherPerformance(teacherID string, classes []analytics.ClassAttendance, grades analytics.Summary) *dto.TeacherPerformance {
	byClass := make([]dto.ClassAttendance, 0, len(classes))
	for _, class := range classes {
		byClass = append(byClass, dto.ClassAttendance{
			ClassID:          class.ClassID,
			AvgAttendancePct: stats.RoundPtr(class.Mean, stats.AveragePrecision),
		})
	}
	return &dto.TeacherPerformance{
		TeacherID:         teacherID,
		ClassCount:        len(classes),
		AttendanceByClass: byClass,
		AverageGradeGiven: stats.RoundPtr(grades.Mean, stats.AveragePrecision),
		TotalGradesGiven:  grades.Count,
	}
}

func assembleSchoolPerformance(schoolID string, year *int, attendance []analytics.MonthlyValue, exams []analytics.ExamTypeSummary, fees []analytics.MonthlyAmount) *dto.SchoolPerformance {
	result := &dto.SchoolPerformance{
		SchoolID:          schoolID,
		Year:              year,
		AttendanceMonthly: make([]dto.MonthlyAttendance, 0, len(attendance)),
		GradeStats:        make([]dto.ExamTypeStats, 0, len(exams)),
		FeeCollections:    make([]dto.MonthlyCollection, 0, len(fees)),
	}
	for _, month := range attendance {
		result.AttendanceMonthly = append(result.AttendanceMonthly, dto.MonthlyAttendance{
			Year:             month.Year,
			Month:            int(month.Month),
			AvgAttendancePct: stats.Round(month.Value, stats.AveragePrecision),
		})
	}
	for _, exam := range exams {
		if exam.Mean == nil {
			continue
		}
		result.GradeStats = append(result.GradeStats, dto.ExamTypeStats{
			ExamType:     exam.ExamType,
			AverageMarks: stats.Round(*exam.Mean, stats.AveragePrecision),
			Count:        exam.Count,
		})
	}
	for _, month := range fees {
		result.FeeCollections = append(result.FeeCollections, dto.MonthlyCollection{
			Year:           month.Year,
			Month:          int(month.Month),
			TotalCollected: month.Total.Round(stats.AveragePrecision).InexactFloat64(),
		})
	}
	return result
}

func assembleComparison(studentID string, comparison analytics.Comparison) *dto.StudentComparison {
	return &dto.StudentComparison{
		StudentID:       studentID,
		StudentScore:    stats.RoundPtr(comparison.StudentScore, stats.AveragePrecision),
		ClassAverage:    stats.RoundPtr(comparison.ClassAverage, stats.AveragePrecision),
		StudentsCounted: comparison.StudentsCounted,
	}
}
