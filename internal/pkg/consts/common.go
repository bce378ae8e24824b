package consts

const (
	MimePrefixImage = "image"
)

const (
	PostStatusNormal = 1
)

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)
