package userservice

// Vehicle модель автомобиля из UserService
type Vehicle struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
	Color        string `json:"color"`
}
