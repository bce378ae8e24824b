package service

import (
	"Halation/internal/api/config"
	"Halation/internal/pkg/consts"
	"Halation/internal/pkg/redis"
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// MailService 密码找回验证码的签发与校验
type MailService interface {
	SendResetCode(ctx context.Context, email string) error
	CheckResetCode(ctx context.Context, email string, code string) error
	ConsumeResetCode(ctx context.Context, email string) error
}

type MailServiceImpl struct {
	client *resty.Client
}

func NewMailService() MailService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &MailServiceImpl{client: client}
}

func (s *MailServiceImpl) SendResetCode(ctx context.Context, email string) error {
	code := generateCode(6)
	if err := redis.SetWithExpiration(ctx, consts.MailResetCodeKey+email, code, 10*time.Minute); err != nil {
		return err
	}

	cfg := config.Cfg.Mail
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+cfg.ApiKey).
		SetBody(map[string]string{
			"from":    cfg.Sender,
			"to":      email,
			"subject": "Halation 密码重置",
			"text":    fmt.Sprintf("您的验证码是 %s，10 分钟内有效。", code),
		}).
		Post(cfg.URL)
	if err != nil {
		return errors.Wrap(err, "邮件网关请求失败")
	}
	if resp.IsError() {
		return errors.Errorf("邮件网关返回异常状态: %d", resp.StatusCode())
	}
	return nil
}

func (s *MailServiceImpl) CheckResetCode(ctx context.Context, email string, code string) error {
	stored, err := redis.GetValue(ctx, consts.MailResetCodeKey+email)
	if err != nil {
		return err
	}
	if stored == "" || stored != code {
		return ErrCodeIncorrect
	}
	return nil
}

func (s *MailServiceImpl) ConsumeResetCode(ctx context.Context, email string) error {
	return redis.DeleteKey(ctx, consts.MailResetCodeKey+email)
}

func generateCode(n int) string {
	const digits = "0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
