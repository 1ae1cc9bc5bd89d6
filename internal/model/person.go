package model

// 参与角色
const (
	RoleActor    = "ACTOR"
	RoleDirector = "DIRECTOR"
	RoleProducer = "PRODUCER"
	RoleWriter   = "WRITER"
	RoleComposer = "COMPOSER"
	RoleOther    = "OTHER"
)

// Person 人物（演员/导演等）
type Person struct {
	ID        int    `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Biography string `json:"biography" db:"biography"`
	PhotoPath string `json:"photo_path" db:"photo_path"`

	Participations []ContentParticipation `json:"participations,omitempty"`
}

// DisplayName 展示名称（姓在前）
func (p *Person) DisplayName() string {
	return p.LastName + " " + p.FirstName
}

// ContentParticipation 内容参与记录，(内容, 人物, 角色) 三元组唯一
type ContentParticipation struct {
	ID             int    `json:"id" db:"id"`
	MediaContentID int    `json:"media_content_id" db:"media_content_id" gorm:"uniqueIndex:idx_content_person_role"`
	PersonID       int    `json:"person_id" db:"person_id" gorm:"uniqueIndex:idx_content_person_role"`
	Role           string `json:"role" db:"role" gorm:"size:20;uniqueIndex:idx_content_person_role"`
	RoleName       string `json:"role_name" db:"role_name"` // 具体角色名（仅演员需要）

	Person       *Person       `json:"person,omitempty"`
	MediaContent *MediaContent `json:"media_content,omitempty"`
}
