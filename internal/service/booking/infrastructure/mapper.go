// internal/service/booking/infrastructure/mapper.go
package infrastructure

import (
	"staybook/internal/service/booking/domain"
)

// FromDomainBooking 将聚合转换为数据库模型（用于插入）。
func FromDomainBooking(b *domain.Booking) *BookingModel {
	lines := make([]BookingRoomModel, 0, len(b.Lines))
	occurrences := make(map[int64]int, len(b.Lines))
	for _, line := range b.Lines {
		occurrences[line.RoomID]++
		m := BookingRoomModel{
			RoomID:          line.RoomID,
			CheckInDate:     b.CheckIn,
			CheckOutDate:    b.CheckOut,
			LineNo:          occurrences[line.RoomID],
			Description:     line.Description,
			HotelID:         line.HotelID,
			Nights:          line.Nights,
			BaseTotal:       line.BaseTotal,
			DiscountedTotal: line.DiscountedTotal,
		}
		if line.Discount != nil {
			id := line.Discount.ID
			m.DiscountID = &id
		}
		lines = append(lines, m)
	}
	return &BookingModel{
		ID:                  b.ID,
		UserID:              b.UserID,
		CheckInDate:         b.CheckIn,
		CheckOutDate:        b.CheckOut,
		BookingDate:         b.BookingDate,
		Remarks:             b.Remarks,
		PaymentType:         string(b.PaymentType),
		TotalBeforeDiscount: b.TotalBeforeDiscount,
		TotalAfterDiscount:  b.TotalAfterDiscount,
		Lines:               lines,
	}
}

// ToDomainBooking 将数据库模型转换回聚合。
// 读取路径上折扣只保留结算结果，不回溯折扣实体本身。
func ToDomainBooking(m *BookingModel) *domain.Booking {
	if m == nil {
		return nil
	}
	lines := make([]domain.RoomLine, 0, len(m.Lines))
	for _, lm := range m.Lines {
		lines = append(lines, domain.RoomLine{
			RoomID:          lm.RoomID,
			Description:     lm.Description,
			HotelID:         lm.HotelID,
			Nights:          lm.Nights,
			BaseTotal:       lm.BaseTotal,
			DiscountedTotal: lm.DiscountedTotal,
		})
	}
	return &domain.Booking{
		ID:                  m.ID,
		UserID:              m.UserID,
		Lines:               lines,
		CheckIn:             m.CheckInDate,
		CheckOut:            m.CheckOutDate,
		BookingDate:         m.BookingDate,
		Remarks:             m.Remarks,
		PaymentType:         domain.PaymentType(m.PaymentType),
		TotalBeforeDiscount: m.TotalBeforeDiscount,
		TotalAfterDiscount:  m.TotalAfterDiscount,
	}
}

// ToDomainRoom 将房间模型（含酒店）转换为领域对象。
func ToDomainRoom(m *RoomModel) *domain.Room {
	if m == nil {
		return nil
	}
	return &domain.Room{
		ID:               m.ID,
		HotelID:          m.HotelID,
		Hotel:            ToDomainHotel(&m.Hotel),
		Description:      m.Description,
		PricePerNight:    m.PricePerNight,
		AdultCapacity:    m.AdultCapacity,
		ChildrenCapacity: m.ChildrenCapacity,
	}
}

func ToDomainHotel(m *HotelModel) *domain.Hotel {
	if m == nil {
		return nil
	}
	return &domain.Hotel{ID: m.ID, Name: m.Name, Address: m.Address}
}

func ToDomainUser(m *UserModel) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{ID: m.ID, Name: m.Name, Email: m.Email}
}

func ToDomainDiscount(m *DiscountModel) domain.Discount {
	return domain.Discount{
		ID:         m.ID,
		RoomID:     m.RoomID,
		Percentage: m.Percentage,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Rule:       m.Rule,
	}
}
