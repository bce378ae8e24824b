package consts

const (
	UserHomeInfoKey       = "user:home:info:"
	UserSimpleInfoKey     = "user:simple:info:"
	UserFollowerKey       = "user:follower:"
	UserFollowingKey      = "user:following:"
	UserFollowerCountKey  = "user:follower:count:"
	UserFollowingCountKey = "user:following:count:"
	UserPostCountKey      = "user:post:count:"
	UserFollowDirtyKey    = "user:follow:dirty"
	PostDirtyKey          = "post:dirty"
	PostLikeKey           = "post:like:"
	PostVoteKey           = "post:vote:"
	PostCommentKey        = "post:comment:"
	CommentLikeKey        = "comment:like:"
	CommentLikeDirtyKey   = "comment:like:dirty"
	BlogLikeKey           = "blog:like:"
	BlogCommentKey        = "blog:comment:"
	BlogDirtyKey          = "blog:dirty"
	MonthlyTopPostsKey    = "post:monthly:top:"
	IMConversationKey     = "im:conversation:"
	IMUserKey             = "im:user:"
	MailResetCodeKey      = "mail:reset:code:"
)

const (
	UserRegisterLock   = "lock:user:register:"
	MonthlyTopInitLock = "lock:monthly:top:"
	UserESLock         = "lock:user:es:"
	UserDetailLock     = "lock:user:detail:"
)
