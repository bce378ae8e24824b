package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserBan                 = errors.New("用户已被封禁")
	ErrUserExist               = errors.New("用户已存在")
	ErrUserEmailExist          = errors.New("邮箱已注册")
	ErrUserEmailNotFound       = errors.New("邮箱未注册")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrCodeIncorrect           = errors.New("验证码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrUserFollowLimit         = errors.New("用户关注数量超过限制")
	ErrUserFollowSelf          = errors.New("用户不能关注自己")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrBlogNotFound            = errors.New("博客不存在")
	ErrCommentNotFound         = errors.New("评论不存在")
	ErrCommentTargetMissing    = errors.New("评论目标缺失")
	ErrCommentParentMissing    = errors.New("回复目标评论不存在")
	ErrCommentParentMismatch   = errors.New("回复目标评论不属于该帖子")
	ErrLikeTargetInvalid       = errors.New("点赞目标无效")
	ErrNotifyNotFound          = errors.New("通知不存在")
	ErrTargetUserInvalid       = errors.New("目标用户无效")
	ErrConversation            = errors.New("会话异常")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserExist:               BadRequest,
	ErrUserEmailExist:          BadRequest,
	ErrUserEmailNotFound:       NotFound,
	ErrUserUsernameExist:       BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrCodeIncorrect:           Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrFileNotSupported:        BadRequest,
	ErrUserFollowLimit:         BadRequest,
	ErrUserFollowSelf:          BadRequest,
	ErrPostNotFound:            NotFound,
	ErrCommentTargetMissing:    BadRequest,
	ErrBlogNotFound:            NotFound,
	ErrCommentNotFound:         NotFound,
	ErrCommentParentMissing:    BadRequest,
	ErrCommentParentMismatch:   BadRequest,
	ErrLikeTargetInvalid:       BadRequest,
	ErrNotifyNotFound:          NotFound,
	ErrTargetUserInvalid:       BadRequest,
	ErrConversation:            BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
