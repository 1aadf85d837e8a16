package catalog

import (
	"context"
	"time"
)

// SeedBooks returns the demo catalog. Records are copied so callers can
// never mutate the seed.
func SeedBooks() []Book {
	books := make([]Book, len(seedBooks))
	copy(books, seedBooks)
	return books
}

// SeedFetcher stands in for the network: it returns the seed catalog
// after an artificial delay.
type SeedFetcher struct {
	Delay time.Duration
}

// Fetch waits the configured delay, then returns the seed records.
// A canceled context wins over the timer.
func (f SeedFetcher) Fetch(ctx context.Context) ([]Book, error) {
	if f.Delay > 0 {
		timer := time.NewTimer(f.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return SeedBooks(), nil
}

var seedBooks = []Book{
	{
		ID:          "1",
		Title:       "人工智能的未来",
		Author:      "李明华",
		Category:    CategoryTechnology,
		Description: "深入探讨人工智能技术的发展趋势，以及对人类社会的深远影响。作者结合多年的研究经验，为读者展现了一个充满可能性的未来世界。",
		Cover:       "https://images.pexels.com/photos/8386440/pexels-photo-8386440.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.8,
		PublishYear: 2023,
		Pages:       320,
		ISBN:        "978-7-111-12345-6",
		Tags:        []string{"人工智能", "未来科技", "社会影响"},
		AuthorBio:   "李明华，清华大学计算机系教授，人工智能领域专家，发表论文200余篇。",
		TableOfContents: []string{
			"第一章：AI的历史回顾", "第二章：现代AI技术", "第三章：未来展望", "第四章：伦理考量",
		},
	},
	{
		ID:          "2",
		Title:       "时间简史续编",
		Author:      "史蒂芬·霍金",
		Category:    CategoryScience,
		Description: "继《时间简史》之后，霍金教授继续为我们解读宇宙的奥秘，探讨黑洞、时间旅行和多维空间的可能性。",
		Cover:       "https://images.pexels.com/photos/2312369/pexels-photo-2312369.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.9,
		PublishYear: 2022,
		Pages:       280,
		ISBN:        "978-7-111-23456-7",
		Tags:        []string{"物理学", "宇宙学", "黑洞"},
		AuthorBio:   "史蒂芬·霍金，剑桥大学理论物理学教授，现代宇宙学大师。",
		TableOfContents: []string{
			"第一章：黑洞的秘密", "第二章：时间的本质", "第三章：多重宇宙", "第四章：生命的意义",
		},
	},
	{
		ID:          "3",
		Title:       "百年孤独新解",
		Author:      "加夫列尔·加西亚·马尔克斯",
		Category:    CategoryLiterature,
		Description: "魔幻现实主义的巅峰之作，讲述了布恩迪亚家族七代人的传奇故事，反映了拉丁美洲的历史变迁。",
		Cover:       "https://images.pexels.com/photos/1029141/pexels-photo-1029141.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.7,
		PublishYear: 2021,
		Pages:       450,
		ISBN:        "978-7-111-34567-8",
		Tags:        []string{"魔幻现实主义", "家族史", "拉美文学"},
		AuthorBio:   "加西亚·马尔克斯，哥伦比亚作家，1982年诺贝尔文学奖获得者。",
		TableOfContents: []string{
			"第一章：创世纪", "第二章：繁荣与衰落", "第三章：爱与战争", "第四章：终结",
		},
	},
	{
		ID:          "4",
		Title:       "商业思维革命",
		Author:      "彼得·德鲁克",
		Category:    CategoryBusiness,
		Description: "管理学大师德鲁克的最新思考，探讨数字时代企业管理的新范式和商业模式创新。",
		Cover:       "https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.6,
		PublishYear: 2023,
		Pages:       380,
		ISBN:        "978-7-111-45678-9",
		Tags:        []string{"管理学", "商业模式", "数字化转型"},
		AuthorBio:   "彼得·德鲁克，现代管理学之父，著有《管理的实践》等经典著作。",
		TableOfContents: []string{
			"第一章：数字时代的管理", "第二章：创新驱动", "第三章：人才战略", "第四章：可持续发展",
		},
	},
	{
		ID:          "5",
		Title:       "哲学的慰藉",
		Author:      "阿兰·德波顿",
		Category:    CategoryPhilosophy,
		Description: "用通俗易懂的语言解释深奥的哲学思想，帮助读者在现代生活中找到智慧的指引。",
		Cover:       "https://images.pexels.com/photos/159711/books-bookstore-book-reading-159711.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.5,
		PublishYear: 2022,
		Pages:       320,
		ISBN:        "978-7-111-56789-0",
		Tags:        []string{"哲学", "生活智慧", "心理学"},
		AuthorBio:   "阿兰·德波顿，瑞士裔英国哲学家和作家，擅长将哲学应用于日常生活。",
		TableOfContents: []string{
			"第一章：苏格拉底的智慧", "第二章：伊壁鸠鲁的快乐", "第三章：塞涅卡的坚韧", "第四章：蒙田的怀疑",
		},
	},
	{
		ID:          "6",
		Title:       "中华五千年",
		Author:      "余秋雨",
		Category:    CategoryHistory,
		Description: "从远古文明到现代社会，全景式展现中华民族的历史进程和文化传承。",
		Cover:       "https://images.pexels.com/photos/1370295/pexels-photo-1370295.jpeg?auto=compress&cs=tinysrgb&w=400",
		Rating:      4.4,
		PublishYear: 2021,
		Pages:       520,
		ISBN:        "978-7-111-67890-1",
		Tags:        []string{"中国历史", "文化传承", "文明史"},
		AuthorBio:   "余秋雨，著名文化学者，上海戏剧学院教授，代表作《文化苦旅》。",
		TableOfContents: []string{
			"第一章：文明的起源", "第二章：春秋战国", "第三章：盛世唐朝", "第四章：近现代变革",
		},
	},
}
