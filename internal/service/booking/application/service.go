// internal/service/booking/application/service.go
package application

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"staybook/internal/pkg/logger"
	"staybook/internal/service/booking/domain"
	"staybook/internal/service/booking/domain/port"
)

// BookingApplicationService 编排预订创建的完整流程：
// 用户校验 -> 日期校验 -> 逐房间（解析、可用性、折扣、计价）-> 聚合 -> 落库 -> 发布确认事件。
// 任何一步失败都会中止整个流程，绝不产生部分预订。
type BookingApplicationService struct {
	users     port.UserDirectory
	rooms     port.RoomCatalog
	discounts port.DiscountCatalog
	bookings  domain.BookingRepository
	locker    port.RoomLocker
	producer  port.ConfirmationProducer
	rules     port.RuleEngine
	tracer    trace.Tracer

	rulesEnabled bool
}

func NewBookingApplicationService(
	users port.UserDirectory,
	rooms port.RoomCatalog,
	discounts port.DiscountCatalog,
	bookings domain.BookingRepository,
	locker port.RoomLocker,
	producer port.ConfirmationProducer,
	rules port.RuleEngine,
	rulesEnabled bool,
	tracer trace.Tracer,
) *BookingApplicationService {
	return &BookingApplicationService{
		users: users, rooms: rooms, discounts: discounts,
		bookings: bookings, locker: locker, producer: producer,
		rules: rules, rulesEnabled: rulesEnabled, tracer: tracer,
	}
}

// CreateBooking 实现预订装配。房间按请求顺序串行处理，
// 第一个失败的房间决定返回的错误。
func (s *BookingApplicationService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.CreateBooking")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("booking.user_id", req.UserID),
		attribute.Int("booking.room_count", len(req.RoomIDs)),
	)

	// 1. 解析下单用户
	user, err := s.users.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, s.fail(span, domain.WrapInternal(err, "failed to load user"))
	}
	if user == nil {
		return nil, s.fail(span, domain.NotFoundf("user with ID %d not found", req.UserID))
	}

	// 2. 校验日期区间
	stay, err := domain.NewStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, s.fail(span, err)
	}
	payment, err := domain.ParsePaymentType(req.PaymentType)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if len(req.RoomIDs) == 0 {
		return nil, s.fail(span, domain.Validationf("at least one room is required"))
	}

	// 3. 对涉及的房间加分布式锁，覆盖 检查可用性 -> 落库 的整个窗口。
	// 仓储的事务内重查是最终防线，这把锁负责把同房间的并发请求串行化。
	unlock, err := s.locker.LockRooms(ctx, req.RoomIDs)
	if err != nil {
		return nil, s.fail(span, domain.WrapInternal(err, "failed to acquire room locks"))
	}
	defer unlock()

	// 4. 按请求顺序逐个房间校验并计价
	lines := make([]domain.RoomLine, 0, len(req.RoomIDs))
	var firstHotelAddress string
	for _, roomID := range req.RoomIDs {
		line, hotelAddr, err := s.priceRoom(ctx, roomID, stay, payment, len(req.RoomIDs))
		if err != nil {
			return nil, s.fail(span, err)
		}
		if firstHotelAddress == "" {
			firstHotelAddress = hotelAddr
		}
		lines = append(lines, *line)
	}

	// 5. 组装聚合
	booking, err := domain.NewBooking(req.UserID, stay, lines, req.Remarks, payment)
	if err != nil {
		return nil, s.fail(span, err)
	}

	// 调用方取消时，在任何持久化动作之前放弃
	if err := ctx.Err(); err != nil {
		return nil, s.fail(span, domain.WrapInternal(err, "request cancelled before save"))
	}

	// 6. 原子落库。提交阶段暴露的重复预订竞争由仓储映射为 Conflict。
	if err := s.bookings.Save(ctx, booking); err != nil {
		return nil, s.fail(span, err)
	}
	span.AddEvent("Booking persisted.")

	// 7. 发布确认事件。预订已经生效，发布失败只降级，不回滚。
	degraded := false
	event := domain.NewBookingCreated(uuid.New().String(), booking, user, firstHotelAddress)
	if err := s.producer.PublishBookingCreated(ctx, event); err != nil {
		degraded = true
		span.RecordError(err)
		logger.Ctx(ctx).Error().Err(err).
			Int64("booking_id", booking.ID).
			Msg("booking persisted but confirmation event could not be published")
	}

	logger.Ctx(ctx).Info().
		Int64("booking_id", booking.ID).
		Int64("user_id", booking.UserID).
		Str("total_after_discount", booking.TotalAfterDiscount.StringFixed(2)).
		Msg("booking created")

	return ToBookingResponse(booking, degraded), nil
}

// priceRoom 处理单个房间：解析、可用性检查、折扣解析、计价。
func (s *BookingApplicationService) priceRoom(ctx context.Context, roomID int64, stay domain.Stay, payment domain.PaymentType, roomCount int) (*domain.RoomLine, string, error) {
	ctx, span := s.tracer.Start(ctx, "app.priceRoom")
	defer span.End()
	span.SetAttributes(attribute.Int64("room.id", roomID))

	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "failed to load room")
	}
	if room == nil {
		return nil, "", domain.NotFoundf("room with ID %d not found", roomID)
	}

	available, err := s.bookings.IsRoomAvailable(ctx, roomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "availability check failed")
	}
	if !available {
		return nil, "", domain.Conflictf("room %d is not available for the selected dates", roomID)
	}

	nights := stay.Nights()
	if nights <= 0 {
		// NewStay 已经保证了这一点，这里是对计价输入的兜底校验
		return nil, "", domain.Validationf("computed nights must be positive")
	}

	// 入住窗口转为零点时间戳后取候选折扣
	candidates, err := s.discounts.GetDiscountsForRoom(ctx, roomID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "failed to load discounts")
	}
	eligible := s.filterEligible(ctx, candidates, port.Fact{
		Nights:      nights,
		PaymentType: string(payment),
		RoomCount:   roomCount,
	})
	best := domain.BestDiscount(eligible, stay.CheckIn, stay.CheckOut)

	base, discounted := domain.PriceLine(room.PricePerNight, nights, best)
	if best != nil {
		span.SetAttributes(attribute.String("discount.percentage", best.Percentage.String()))
	}

	hotelAddress := ""
	if room.Hotel != nil {
		hotelAddress = room.Hotel.Address
	}

	return &domain.RoomLine{
		RoomID:          room.ID,
		Description:     room.Description,
		HotelID:         room.HotelID,
		Nights:          nights,
		BaseTotal:       base,
		Discount:        best,
		DiscountedTotal: discounted,
	}, hotelAddress, nil
}

// filterEligible 用规则引擎过滤带资格规则的折扣。
// 规则评估出错时按不适用处理，只记日志，不让折扣问题阻断预订。
func (s *BookingApplicationService) filterEligible(ctx context.Context, candidates []domain.Discount, fact port.Fact) []domain.Discount {
	if !s.rulesEnabled || s.rules == nil {
		return candidates
	}
	eligible := candidates[:0:0]
	for _, d := range candidates {
		if d.Rule == "" {
			eligible = append(eligible, d)
			continue
		}
		ok, err := s.rules.Evaluate(d.Rule, fact)
		if err != nil {
			logger.Ctx(ctx).Warn().Err(err).
				Int64("discount_id", d.ID).
				Msg("discount rule evaluation failed, treating as not applicable")
			continue
		}
		if ok {
			eligible = append(eligible, d)
		}
	}
	return eligible
}

// GetBooking 按 ID 查询预订。
func (s *BookingApplicationService) GetBooking(ctx context.Context, id int64) (*BookingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.GetBooking")
	defer span.End()

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(span, err)
	}
	return ToBookingResponse(booking, false), nil
}

// ListUserBookings 返回某个用户的全部预订。
func (s *BookingApplicationService) ListUserBookings(ctx context.Context, userID int64) ([]*BookingResponse, error) {
	ctx, span := s.tracer.Start(ctx, "app.ListUserBookings")
	defer span.End()

	bookings, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	responses := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, ToBookingResponse(b, false))
	}
	return responses, nil
}

// CancelBooking 删除一条预订。取消是独立的简单操作，不在装配核心之内。
func (s *BookingApplicationService) CancelBooking(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "app.CancelBooking")
	defer span.End()

	if err := s.bookings.DeleteByID(ctx, id); err != nil {
		return s.fail(span, err)
	}
	logger.Ctx(ctx).Info().Int64("booking_id", id).Msg("booking cancelled")
	return nil
}

func (s *BookingApplicationService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
