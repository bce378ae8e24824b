package service

import (
	"Halation/internal/api/dto"
	"Halation/internal/model"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/mongo"
	"Halation/internal/pkg/redis"
	"Halation/internal/pkg/util"
	"Halation/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ChatService 私信服务接口定义
type ChatService interface {
	SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error)
	GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error)
	GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error)
	GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error)
	GetTotalUnread(ctx context.Context, userID uint64) (int64, error)
	MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error
	Close()
}

type chatServiceImpl struct {
	convRepo      repository.ConversationRepo
	messageRepo   mongo.MessageRepo
	userRepo      repository.UserRepo
	notifyService NotifyService
	retryChan     chan *mongo.Message
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewChatService 构造函数：初始化服务并启动异步校准工作池
func NewChatService(convRepo repository.ConversationRepo, messageRepo mongo.MessageRepo, userRepo repository.UserRepo, notifyService NotifyService) ChatService {
	s := &chatServiceImpl{
		convRepo:      convRepo,
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		notifyService: notifyService,
		retryChan:     make(chan *mongo.Message, 2048),
		stopChan:      make(chan struct{}),
	}

	workerCount := 5
	s.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go s.calibrationWorker()
	}

	return s
}

// SendMessage 发送私信
func (s *chatServiceImpl) SendMessage(ctx context.Context, senderID uint64, req *dto.SendMessageReq) (*dto.MessageDTO, error) {
	var convID = req.ConversationID
	var targetID = req.TargetUserID

	// 确定会话 ID 与目标用户 ID
	if convID == 0 {
		if targetID == 0 {
			return nil, ErrTargetUserInvalid
		}
		id, err := s.GetOrCreateConversation(ctx, senderID, targetID)
		if err != nil {
			return nil, err
		}
		convID = id
	} else {
		// 校验成员权限并解析 targetID
		conv, err := s.convRepo.GetConversation(ctx, convID)
		if err != nil {
			return nil, ErrConversation
		}
		isMember, _ := s.convRepo.IsMember(ctx, convID, senderID)
		if !isMember {
			return nil, UnauthorizedError
		}
		targetID, _ = s.parsePeerID(conv.PeerKey, senderID)
	}

	// MySQL 原子定序
	newSeq, err := s.convRepo.IncrMaxSeq(ctx, convID, req.Content, senderID)
	if err != nil {
		return nil, err
	}

	// 构造并存入 MongoDB
	msgModel := &mongo.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        req.Content,
		ReplyTo:        req.ReplyTo,
		Seq:            newSeq,
		CreatedAt:      time.Now(),
	}

	writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.messageRepo.SaveMessage(writeCtx, msgModel); err != nil {
		select {
		case s.retryChan <- msgModel:
		default:
		}
	}

	// 推送到接收者的用户个人频道
	_ = s.publishMessageToRedis(context.Background(), msgModel, targetID)

	// 离线方靠信箱补收
	if s.notifyService != nil && targetID != 0 {
		_ = s.notifyService.Notify(ctx, &mongo.NotifyModel{
			ReceiverID: targetID,
			SenderID:   senderID,
			Type:       mongo.NotifyTypeMessage,
			TargetID:   convID,
			Content:    req.Content,
		})
	}

	return s.toMessageDTO(msgModel), nil
}

// GetOrCreateConversation 单聊会话获取或创建，PeerKey 由小 ID 在前拼接
func (s *chatServiceImpl) GetOrCreateConversation(ctx context.Context, userID, targetUserID uint64) (uint64, error) {
	if userID == targetUserID {
		return 0, ErrTargetUserInvalid
	}

	target, err := s.userRepo.GetUserById(ctx, targetUserID)
	if err != nil {
		return 0, err
	}
	if target == nil || target.IsDelete {
		return 0, ErrTargetUserInvalid
	}

	var peerKey string
	if userID < targetUserID {
		peerKey = fmt.Sprintf("%d_%d", userID, targetUserID)
	} else {
		peerKey = fmt.Sprintf("%d_%d", targetUserID, userID)
	}

	conv, err := s.convRepo.GetConversationByPeerKey(ctx, peerKey)
	if err == nil {
		return conv.ID, nil
	}

	newConv := &model.Conversation{
		PeerKey:       peerKey,
		LastMessageAt: time.Now(),
	}
	members := []*model.ConversationMember{
		{UserID: userID, IsVisible: 1, JoinedAt: time.Now()},
		{UserID: targetUserID, IsVisible: 1, JoinedAt: time.Now()},
	}

	if err := s.convRepo.CreateConversation(ctx, newConv, members); err != nil {
		return 0, err
	}
	return newConv.ID, nil
}

// GetChatHistory 拉取历史，包含空洞自愈
func (s *chatServiceImpl) GetChatHistory(ctx context.Context, userID uint64, convID uint64, lastSeq uint64, pageSize int) ([]*dto.MessageDTO, error) {
	_, pageSize = util.ClampPage(1, pageSize)

	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return nil, UnauthorizedError
	}

	models, err := s.messageRepo.GetHistory(ctx, convID, lastSeq, pageSize)
	if err != nil {
		return nil, err
	}

	if lastSeq == 0 {
		conv, err := s.convRepo.GetConversation(ctx, convID)
		if err == nil {
			hasGap := (len(models) == 0 && conv.MaxMsgSeq > 0) || (len(models) > 0 && models[0].Seq < conv.MaxMsgSeq)
			if hasGap {
				stub := &dto.MessageDTO{
					ConversationID: conv.ID,
					Content:        conv.LastMsgContent,
					SenderID:       conv.LastSenderID,
					Seq:            conv.MaxMsgSeq,
					CreatedAt:      conv.LastMessageAt,
				}
				res := []*dto.MessageDTO{stub}
				for _, m := range models {
					res = append(res, s.toMessageDTO(m))
				}
				return res, nil
			}
		}
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// GetConversationList 获取会话列表
func (s *chatServiceImpl) GetConversationList(ctx context.Context, userID uint64) ([]*dto.ConversationDTO, error) {
	members, err := s.convRepo.GetUserConversationMemList(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ConversationDTO, 0, len(members))
	convIDs := make([]uint64, 0, len(members))
	peerIDs := make([]uint64, 0, len(members))
	for _, m := range members {
		d := &dto.ConversationDTO{
			ConversationID: m.ConversationID,
			LastMsgContent: m.Conversation.LastMsgContent,
			LastSenderID:   m.Conversation.LastSenderID,
			LastMessageAt:  m.Conversation.LastMessageAt,
			UnreadCount:    m.UnreadCount,
		}

		peerID, _ := s.parsePeerID(m.Conversation.PeerKey, userID)
		d.PeerID = peerID
		convIDs = append(convIDs, m.ConversationID)
		peerIDs = append(peerIDs, peerID)
		res = append(res, d)
	}

	// 批量补齐对方已读进度
	if len(convIDs) > 0 {
		readSeqs, err := s.convRepo.GetConvPeersReadSeq(ctx, convIDs, peerIDs)
		if err == nil {
			for _, d := range res {
				d.PeerReadSeq = readSeqs[d.ConversationID]
			}
		}
	}
	return res, nil
}

// GetTotalUnread 所有会话未读总数，供角标展示
func (s *chatServiceImpl) GetTotalUnread(ctx context.Context, userID uint64) (int64, error) {
	return s.convRepo.GetTotalUnreadCount(ctx, userID)
}

// MarkAsRead 标记已读，序号越界时收敛到会话最大序号
func (s *chatServiceImpl) MarkAsRead(ctx context.Context, userID uint64, convID uint64, seq uint64) error {
	isMember, err := s.convRepo.IsMember(ctx, convID, userID)
	if err != nil || !isMember {
		return UnauthorizedError
	}

	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		return err
	}

	targetSeq := seq
	if targetSeq > conv.MaxMsgSeq {
		targetSeq = conv.MaxMsgSeq
	}

	if err = s.convRepo.UpdateReadSeq(ctx, convID, userID, targetSeq); err != nil {
		return err
	}

	peerID, err := s.parsePeerID(conv.PeerKey, userID)
	if err != nil {
		return err
	}
	go func() {
		err = s.publishReadReceipt(convID, userID, peerID, targetSeq)
		if err != nil {
			log.Error("Failed to publish read receipt", "err", err)
		}
	}()

	return nil
}

// publishMessageToRedis 发布消息到接收者的用户频道
func (s *chatServiceImpl) publishMessageToRedis(ctx context.Context, msg *mongo.Message, targetUserID uint64) error {
	data, err := json.Marshal(s.toMessageDTO(msg))
	if err != nil {
		return err
	}
	channel := consts.IMUserKey + strconv.FormatUint(targetUserID, 10)
	return redis.Publish(ctx, channel, data)
}

// publishReadReceipt 发布已读回执到对方频道
func (s *chatServiceImpl) publishReadReceipt(convID, fromUID, toPeerID, seq uint64) error {
	receipt := &dto.ReadReceiptDTO{
		ConversationID: convID,
		UserID:         fromUID,
		ReadSeq:        seq,
		Type:           "READ_RECEIPT",
	}
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	channel := consts.IMUserKey + strconv.FormatUint(toPeerID, 10)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return redis.Publish(ctx, channel, data)
}

func (s *chatServiceImpl) Close() {
	close(s.stopChan)
	s.wg.Wait()
	log.Info("ChatService shut down gracefully")
}

func (s *chatServiceImpl) calibrationWorker() {
	defer s.wg.Done()
	for {
		select {
		case msg := <-s.retryChan:
			backoff := time.Second
			for i := 0; i < 3; i++ {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				err := s.messageRepo.SaveMessage(ctx, msg)
				cancel()
				if err == nil {
					break
				}
				time.Sleep(backoff)
				backoff *= 2
			}
		case <-s.stopChan:
			return
		}
	}
}

func (s *chatServiceImpl) parsePeerID(peerKey string, currentUserID uint64) (uint64, error) {
	var u1, u2 uint64
	_, err := fmt.Sscanf(peerKey, "%d_%d", &u1, &u2)
	if err != nil {
		return 0, err
	}
	if u1 == currentUserID {
		return u2, nil
	}
	return u1, nil
}

func (s *chatServiceImpl) toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID: m.ID, ConversationID: m.ConversationID, SenderID: m.SenderID,
		Content: m.Content, ReplyTo: m.ReplyTo,
		Seq: m.Seq, CreatedAt: m.CreatedAt,
	}
}
