package domain

// Well-known system setting keys
const (
	SettingAllowRegistrations = "allow_registrations"
)

// SystemSetting is an admin-managed key/value pair
type SystemSetting struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex:uq_system_settings_key" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// TableName specifies the table name for SystemSetting
func (SystemSetting) TableName() string {
	return "system_settings"
}
