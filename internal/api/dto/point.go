package dto

type CoordDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type PointDTO struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Demand int `json:"demand"`
}

type ListPointsResponse struct {
	Points []PointDTO `json:"points"`
}
