package entity

type ServiceID string

const (
	ServiceNatural   ServiceID = "natural"
	ServiceCombo     ServiceID = "combo"
	ServiceShadow    ServiceID = "shadow"
	ServiceRecommend ServiceID = "recommend"
	ServiceRetouch   ServiceID = "retouch"
	ServiceBrownline ServiceID = "brownline"
	ServiceRemoval   ServiceID = "removal"
)

type ServiceGroup string

const (
	GroupEyebrow ServiceGroup = "eyebrow"
	GroupOther   ServiceGroup = "other"
)

type ServiceType struct {
	ID          ServiceID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Group       ServiceGroup `json:"group"`
}

var serviceCatalog = []ServiceType{
	{ID: ServiceNatural, Name: "자연눈썹", Description: "키뮤원장과 상담 후 자연눈썹 디자인으로 시술 진행해드려요!", Group: GroupEyebrow},
	{ID: ServiceCombo, Name: "콤보눈썹", Description: "키뮤원장과 상담 후 콤보눈썹 디자인으로 시술 진행해드려요!", Group: GroupEyebrow},
	{ID: ServiceShadow, Name: "섀도우눈썹", Description: "키뮤원장과 상담 후 섀도우눈썹 디자인으로 시술 진행해드려요!", Group: GroupEyebrow},
	{ID: ServiceRecommend, Name: "키뮤원장 추천시술", Description: "키뮤원장과 상담 후 맞춤시술 진행해드려요!", Group: GroupEyebrow},
	{ID: ServiceRetouch, Name: "리터치", Description: "눈썹문신 시술 후 n회 무료 리터치", Group: GroupEyebrow},
	{ID: ServiceBrownline, Name: "브라운아이라인", Description: "아이라인을 브라운 이쁘게", Group: GroupOther},
	{ID: ServiceRemoval, Name: "잔흔제거", Description: "키뮤디자인을 완벽하게 하기 위한 잔흔 시술!", Group: GroupOther},
}

// ServiceTypes returns a copy of the treatment catalog in display order.
func ServiceTypes() []ServiceType {
	out := make([]ServiceType, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

func (id ServiceID) Valid() bool {
	for _, s := range serviceCatalog {
		if s.ID == id {
			return true
		}
	}
	return false
}
