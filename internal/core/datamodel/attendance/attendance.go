package attendance

import "time"

type Attendance struct {
	ID        int64      `gorm:"primaryKey"`
	UserID    int64      `gorm:"column:user_id;not null;index"`
	WorkDate  time.Time  `gorm:"column:work_date;not null"`
	ClockIn   time.Time  `gorm:"column:clock_in;not null"`
	ClockOut  *time.Time `gorm:"column:clock_out"`
	Note      string     `gorm:"column:note"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Attendance) TableName() string {
	return "attendances"
}
