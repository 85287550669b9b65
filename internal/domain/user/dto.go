package user

import "github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"

type ProfileMeta struct {
	FullName     string `json:"full_name"`
	Initials     string `json:"initials"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	Manager      string `json:"manager"`
	EmployeeCode string `json:"employee_code"`
}

type ProfileResponse struct {
	ID         string                         `json:"id"`
	UserID     string                         `json:"user_id"`
	Name       string                         `json:"name"`
	Email      string                         `json:"email"`
	Avatar     *string                        `json:"avatar"`
	Role       Role                           `json:"role"`
	Timezone   string                         `json:"timezone"`
	Meta       ProfileMeta                    `json:"meta"`
	Statistics performance.StatisticsResponse `json:"statistics"`
}
