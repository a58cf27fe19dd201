package dto

// LocationReport - результат запроса геолокации на устройстве хоста
type LocationReport struct {
	Permission string   `json:"permission" validate:"required,oneof=granted denied undetermined"`
	Latitude   *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude  *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Error      string   `json:"error,omitempty" validate:"max=512"`
}

// OpenSessionRequest - открытие экрана поиска пунктов сбора
type OpenSessionRequest struct {
	Location LocationReport `json:"location" validate:"required"`
}
