package services

import "bookingapi/booking/model"

type RulesService struct {
	roomTable *model.RoomTable
}

func NewRulesService(roomTable *model.RoomTable) *RulesService {
	return &RulesService{roomTable: roomTable}
}

func (rs *RulesService) RoomRules() model.RoomRules {
	return rs.roomTable.Rules()
}
