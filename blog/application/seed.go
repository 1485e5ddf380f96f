package application

import (
	"context"
	"fmt"
	"time"

	"github.com/auri-community/blog/blog/domain"
)

// SeedSamplePosts loads the three launch posts into an empty store so the
// public listing is not blank on first boot. Safe to skip; the server runs
// fine without them.
func (s *PostService) SeedSamplePosts(ctx context.Context) error {
	samples := []*domain.Post{
		{
			ID:          "1",
			Title:       "감동이 있던 지난 주 재즈 콘서트",
			Excerpt:     "아티스트와 관객이 하나 되는 마법같은 순간들을 담아보았습니다.",
			Content:     "<p>지난 주 토요일 저녁, 더하우스콘서트에서 열린 재즈 콘서트는 정말 특별했습니다.</p><p>김재민 트리오의 연주는 관객들의 마음을 사로잡았고, 특히 'Autumn Leaves'를 연주할 때는 객석이 완전히 조용해졌습니다.</p>",
			Category:    "리뷰",
			Author:      domain.DefaultAuthor,
			PublishedAt: time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC),
			ImageURL:    domain.DefaultImageURL,
			Featured:    true,
			Slug:        "jazz-concert-review-last-week",
		},
		{
			ID:          "2",
			Title:       "아티스트 인터뷰: 음악에 대한 열정",
			Excerpt:     "신예 아티스트를 만나 그들의 음악 여정과 철학에 대해 들어보았습니다.",
			Content:     "<p>이번 주에는 차세대 싱어송라이터 이지은 씨를 만나보았습니다.</p><p>\"음악은 제게 있어 언어입니다. 말로 표현하기 어려운 감정들을 멜로디와 가사로 전달하고 싶어요.\"</p>",
			Category:    "인터뷰",
			Author:      domain.DefaultAuthor,
			PublishedAt: time.Date(2024, 7, 18, 14, 30, 0, 0, time.UTC),
			ImageURL:    domain.DefaultImageURL,
			Featured:    true,
			Slug:        "artist-interview-music-passion",
		},
		{
			ID:          "3",
			Title:       "다가오는 8월 스페셜 콘서트",
			Excerpt:     "여름 밤을 더욱 특별하게 만들어줄 스페셜 콘서트를 준비했습니다.",
			Content:     "<p>8월 15일, 더하우스콘서트에서 특별한 여름 콘서트가 열립니다.</p><ul><li>어쿠스틱 기타: 김민수</li><li>재즈 보컬: 박수영</li><li>피아노 솔로: 정한별</li></ul><p>티켓 예매는 7월 25일부터 시작됩니다.</p>",
			Category:    "이벤트",
			Author:      domain.DefaultAuthor,
			PublishedAt: time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC),
			ImageURL:    domain.DefaultImageURL,
			Featured:    true,
			Slug:        "august-special-concert",
		},
	}

	for _, p := range samples {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed post %s: %w", p.Slug, err)
		}
	}
	return nil
}
